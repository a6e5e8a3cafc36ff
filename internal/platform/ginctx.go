package platform

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// UserIDHeader is the opaque user id header injected by the gateway after
// it authenticates the request. This service never validates credentials.
const UserIDHeader = "X-Brokerage-User"

func InjectClientMiddleware(p *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil && c.Request != nil {
			c.Request = c.Request.WithContext(WithClient(c.Request.Context(), p))
		}
		c.Next()
	}
}

func ClientFromGin(c *gin.Context) *Client {
	if c == nil {
		return nil
	}
	if c.Request == nil {
		return nil
	}
	return ClientFromContext(c.Request.Context())
}

// UserIDFromGin parses the gateway-provided user id. Zero means absent.
func UserIDFromGin(c *gin.Context) uint64 {
	if c == nil {
		return 0
	}
	raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func LogBestEffort(c *gin.Context, action, level string, details map[string]any) {
	p := ClientFromGin(c)
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = p.CreateLog(ctx, CreateLogRequest{
		Agent:      "advisor-service",
		Action:     action,
		Level:      level,
		Details:    details,
		SessionKey: "",
		Metadata:   map[string]any{},
	})
}
