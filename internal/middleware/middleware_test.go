package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTaskLoader map[uuid.UUID]*models.Task

func (f fakeTaskLoader) GetTaskByTaskID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	if id == uuid.Nil {
		return nil, errors.New("store unavailable")
	}
	task, ok := f[id]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	return task, nil
}

// newSessionRouter mounts a login route that stores value in the session.
func newSessionRouter(value any) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, value)
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, userID.String())
	})
	return r
}

func loginAndGet(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	id := uuid.New()

	t.Run("valid session", func(t *testing.T) {
		w := loginAndGet(t, newSessionRouter(id.String()))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id.String(), w.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		w := loginAndGet(t, newSessionRouter("not-a-uuid"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		newSessionRouter(id.String()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireUUIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", RequireUUIDParam("id"), func(c *gin.Context) {
		id, ok := GetPathID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	id := uuid.New()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())

	for _, bad := range []string{"42", "abc", id.String() + "0"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestRequireTaskAccess(t *testing.T) {
	owner := uuid.New()
	task := models.NewTask(owner, "Buy milk", "", nil)
	loader := fakeTaskLoader{task.ID: task}

	newRouter := func(caller uuid.UUID) *gin.Engine {
		r := gin.New()
		r.GET("/tasks/:id",
			func(c *gin.Context) { c.Set(constants.ContextKeyUserID, caller) },
			RequireUUIDParam("id"),
			RequireTaskAccess(loader),
			func(c *gin.Context) {
				loaded, ok := GetTask(c)
				require.True(t, ok)
				c.String(http.StatusOK, loaded.Name)
			})
		return r
	}

	tests := []struct {
		name       string
		caller     uuid.UUID
		taskID     uuid.UUID
		wantStatus int
	}{
		{name: "owner", caller: owner, taskID: task.ID, wantStatus: http.StatusOK},
		{name: "other user", caller: uuid.New(), taskID: task.ID, wantStatus: http.StatusNotFound},
		{name: "missing task", caller: owner, taskID: uuid.New(), wantStatus: http.StatusNotFound},
		{name: "store failure", caller: owner, taskID: uuid.Nil, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.caller).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/"+tt.taskID.String(), nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.TraceIDHeader, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(constants.TraceIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, access map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &access))

	assert.Equal(t, "trace-123", inner[logger.TraceIDField])
	assert.Equal(t, "trace-123", access[logger.TraceIDField])
	assert.Equal(t, "/ping", access["path"])
	assert.Equal(t, float64(http.StatusOK), access["status"])
}

func TestRequestLogger_GeneratesTraceID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.Nop()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	_, err := uuid.Parse(w.Header().Get(constants.TraceIDHeader))
	assert.NoError(t, err)
}
