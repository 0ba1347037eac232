package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerTagsRouteAndUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/produtos/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/produtos/9", nil)
	req.AddCookie(&http.Cookie{
		Name:  session.CookieName,
		Value: url.QueryEscape(`{"id":1,"username":"ana","role":"ESTOQUE"}`),
	})
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, http.StatusNotFound, entry.Data["status_code"])
	assert.Equal(t, "/produtos/:id", entry.Data["route"])
	assert.Equal(t, "ana", entry.Data["user"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestRequestLoggerAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.NotContains(t, entry.Data, "user")
}
