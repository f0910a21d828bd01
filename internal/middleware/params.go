package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// RequireUUIDParam rejects requests whose path parameter name is not a
// UUID. The parsed value is available through GetPathID.
func RequireUUIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			apierrors.InvalidFormat(c, "Invalid "+name)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPathID, id)
		c.Next()
	}
}

// GetPathID retrieves the identifier parsed by RequireUUIDParam
func GetPathID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyPathID)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	return id, ok
}
