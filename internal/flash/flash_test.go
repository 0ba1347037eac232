package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopReturnsMessageOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/categorias/add", nil)
	SetSuccess(c, "Categoria criada com sucesso.")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Equal(t, 60, cookies[0].MaxAge)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/categorias", nil)
	c.Request.AddCookie(cookies[0])

	m := Pop(c)
	require.NotNil(t, m)
	assert.Equal(t, Success, m.Kind)
	assert.Equal(t, "Categoria criada com sucesso.", m.Text)

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestPopWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, Pop(c))

	c.Request.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
	assert.Nil(t, Pop(c))
}

func TestSecureFlagReachesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, secure := range []bool{true, false} {
		r := gin.New()
		r.Use(Secure(secure))
		r.POST("/save", func(c *gin.Context) {
			SetError(c, "Ocorreu um erro ao salvar categoria.")
			c.Status(http.StatusSeeOther)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/save", nil))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, secure, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)
	}
}
