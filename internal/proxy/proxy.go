package proxy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/felipe-souza17/stock-front/internal/middleware"
	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const Prefix = "/api"

// NewReverseProxy forwards /api/* to the remote API with the prefix removed.
func NewReverseProxy(target, prefixToStrip string, log *logrus.Logger) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		log.Errorf("Failed to parse target URL '%s': %v", target, err)
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if targetURL.Host == "" {
		return nil, fmt.Errorf("invalid target URL %q: missing host", target)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)

	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		// strip before joining with the target's own base path
		req.URL.Path, req.URL.RawPath = stripPrefix(req.URL.Path, req.URL.RawPath, prefixToStrip)
		originalDirector(req)
		req.Host = targetURL.Host

		// the session cookie belongs to this front end only
		req.Header.Del("Cookie")
		if sess, ok := req.Context().Value(sessionKey{}).(*domain.Session); ok && sess != nil {
			req.Header.Set("X-User-ID", strconv.FormatInt(sess.UserID, 10))
			req.Header.Set("X-User-Role", string(sess.Role))
		}

		log.Debugf("Proxy Director: final request URL: %s", req.URL.String())
	}

	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		log.Errorf("Reverse proxy error to target '%s' for path '%s': %v", target, req.URL.Path, err)
		http.Error(rw, "Bad Gateway", http.StatusBadGateway)
	}

	log.Infof("Reverse proxy created for target: %s (will strip prefix: '%s')", target, prefixToStrip)
	return proxy, nil
}

func stripPrefix(path, rawPath, prefix string) (string, string) {
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return path, rawPath
	}
	clean := func(p string) string {
		p = strings.TrimPrefix(p, prefix)
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		return p
	}
	if rawPath != "" {
		rawPath = clean(rawPath)
	}
	return clean(path), rawPath
}

type sessionKey struct{}

func contextWithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// ProxyHandler passes the request through, tagging it with the signed-in user
// and the request id.
func ProxyHandler(p *httputil.ReverseProxy, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if raw, err := c.Cookie(session.CookieName); err == nil {
			if sess, err := session.Decode(raw); err == nil {
				ctx = contextWithSession(ctx, sess)
			}
		}
		c.Request = c.Request.WithContext(ctx)
		if id := c.Writer.Header().Get(middleware.RequestIDHeader); id != "" {
			c.Request.Header.Set(middleware.RequestIDHeader, id)
		}

		log.Debugf("ProxyHandler: forwarding %s %s", c.Request.Method, c.Request.URL.Path)
		p.ServeHTTP(c.Writer, c.Request)
	}
}
