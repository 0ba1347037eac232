package middleware

import (
	"time"

	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one entry per screen or API call, tagged with the
// route pattern and, when signed in, the user.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"status_code": status,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"latency_ms":  time.Since(started).Milliseconds(),
		}
		if route := c.FullPath(); route != "" {
			fields["route"] = route
		}
		if id := c.Writer.Header().Get(RequestIDHeader); id != "" {
			fields["request_id"] = id
		}
		if raw, err := c.Cookie(session.CookieName); err == nil {
			if sess, err := session.Decode(raw); err == nil {
				fields["user"] = sess.Username
			}
		}
		entry := logger.WithFields(fields)

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed")
		}
	}
}
