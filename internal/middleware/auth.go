package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const LoginPath = "/login"

// PublicPrefixes are reachable without a session. An entry ending in "/"
// covers everything below it; any other entry matches itself and its
// sub-paths only.
var PublicPrefixes = []string{
	LoginPath,
	"/static/",
	"/favicon.ico",
	"/health",
	"/metrics",
	"/api/auth/login",
}

// Decision is the outcome of Check. Redirect is empty when the request may
// proceed.
type Decision struct {
	Allow    bool
	Redirect string
}

// Check decides whether a request for path may proceed given the raw
// (unescaped) user_auth cookie value.
func Check(path, cookieValue string, present bool) Decision {
	if IsPublic(path) {
		return Decision{Allow: true}
	}
	if !present || cookieValue == "" {
		return Decision{Redirect: LoginRedirect(path)}
	}
	if _, err := session.Decode(cookieValue); err != nil {
		return Decision{Redirect: LoginRedirect(path)}
	}
	return Decision{Allow: true}
}

func IsPublic(path string) bool {
	for _, prefix := range PublicPrefixes {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// LoginRedirect builds /login?redirectedFrom=<path>.
func LoginRedirect(path string) string {
	q := url.Values{}
	q.Set("redirectedFrom", path)
	return LoginPath + "?" + q.Encode()
}

// AuthGate redirects requests without a usable session cookie to the login
// screen.
func AuthGate(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		decision := Check(c.Request.URL.Path, raw, err == nil)
		if decision.Allow {
			c.Next()
			return
		}
		log.Debugf("AuthGate: redirecting %s to %s", c.Request.URL.Path, decision.Redirect)
		c.Redirect(http.StatusFound, decision.Redirect)
		c.Abort()
	}
}
