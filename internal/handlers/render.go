package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/felipe-souza17/stock-front/internal/auth"
	"github.com/felipe-souza17/stock-front/internal/crud"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/felipe-souza17/stock-front/internal/flash"
	"github.com/gin-gonic/gin"
)

// Page is what every template receives.
type Page struct {
	Title string
	User  *domain.Session
	Flash *flash.Message
	Body  any
}

// Renderer draws full screens: header with the signed-in user, the pending
// notification and the screen body.
type Renderer struct {
	auth    *auth.Provider
	timeout time.Duration
}

func NewRenderer(provider *auth.Provider, timeout time.Duration) *Renderer {
	return &Renderer{auth: provider, timeout: timeout}
}

func (v *Renderer) HTML(c *gin.Context, status int, name, title string, body any) {
	v.render(c, status, name, title, body, nil)
}

// WithNotice renders with n shown in place of any pending notification, which
// is then kept for the next screen. A nil or empty n shows the pending one.
func (v *Renderer) WithNotice(c *gin.Context, status int, name, title string, body any, n *crud.Notice) {
	var m *flash.Message
	if n != nil && n.Text != "" {
		m = noticeMessage(*n)
	}
	v.render(c, status, name, title, body, m)
}

func (v *Renderer) render(c *gin.Context, status int, name, title string, body any, m *flash.Message) {
	if m == nil {
		m = flash.Pop(c)
	}
	// every screen reflects the latest remote state
	c.Header("Cache-Control", "no-store")
	c.HTML(status, name, Page{
		Title: title,
		User:  v.auth.Mount(c).User(),
		Flash: m,
		Body:  body,
	})
}

// callContext bounds one remote call made on behalf of the request.
func (v *Renderer) callContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), v.timeout)
}

func noticeMessage(n crud.Notice) *flash.Message {
	if n.OK {
		return &flash.Message{Kind: flash.Success, Text: n.Text}
	}
	return &flash.Message{Kind: flash.Error, Text: n.Text}
}

func notify(c *gin.Context, n crud.Notice) {
	if n.OK {
		flash.SetSuccess(c, n.Text)
		return
	}
	flash.SetError(c, n.Text)
}

// pageParam reads ?page=N, falling back to the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
