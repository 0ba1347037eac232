package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderObserverSeesEveryMount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := session.NewStore(false, logger)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, store.Save(c, *admin))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	var seen []State
	p := NewProvider(&fakeAuthenticator{}, store, logger).
		WithObserver(func(s State) { seen = append(seen, s) })

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/produtos", nil)
	c.Request.AddCookie(cookies[0])
	p.Mount(c)

	require.Len(t, seen, 2)
	assert.Equal(t, Loading, seen[0].Kind)
	assert.Equal(t, Authenticated, seen[1].Kind)
	assert.Equal(t, "root", seen[1].User.Username)

	seen = nil
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/produtos", nil)
	p.Mount(c)
	require.Len(t, seen, 2)
	assert.Equal(t, Anonymous, seen[1].Kind)
	assert.Nil(t, seen[1].User)
}
