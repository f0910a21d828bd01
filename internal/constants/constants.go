package constants

const (
	// ContextKeyUserID is the key under which the authenticated user id is
	// stored in both the session and the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyPathID holds the parsed :id path parameter.
	ContextKeyPathID = "path_id"

	// ContextKeyTask holds the task loaded by RequireTaskAccess.
	ContextKeyTask = "task"

	// ContextKeyTraceID holds the request trace id.
	ContextKeyTraceID = "trace_id"

	SessionCookieName = "task_session"
	SessionMaxAge     = 86400 * 7

	// DateLayout is the wire format of task due dates.
	DateLayout = "2006-01-02"

	TraceIDHeader = "X-Trace-ID"
)
