package handlers

import (
	"net/http"
	"net/url"

	"github.com/felipe-souza17/stock-front/internal/auth"
	"github.com/felipe-souza17/stock-front/internal/crud"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	provider *auth.Provider
	view     *Renderer
	log      *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(provider *auth.Provider, view *Renderer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		view:     view,
		log:      logger,
	}
}

// LoginForm is the body of the login screen.
type LoginForm struct {
	Username       string
	RedirectedFrom string
	Errors         crud.FieldErrors
}

// ShowLogin handles GET /login. A signed-in user goes straight on.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	target := c.Query("redirectedFrom")
	if h.provider.Mount(c).IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, auth.SafeRedirect(target))
		return
	}
	h.view.HTML(c, http.StatusOK, "login.html", "Entrar", LoginForm{RedirectedFrom: target})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Login")
	target := c.PostForm("redirectedFrom")

	var creds crud.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		handlerLogger.Warnf("Failed to bind login form: %v", err)
	}
	if errs := creds.Validate(); !errs.Empty() {
		h.view.HTML(c, http.StatusUnprocessableEntity, "login.html", "Entrar", LoginForm{
			Username:       creds.Username,
			RedirectedFrom: target,
			Errors:         errs,
		})
		return
	}
	handlerLogger.Infof("Processing login request for user: %s", creds.Username)

	ctx, cancel := h.view.callContext(c)
	defer cancel()

	// on success the auth context has already navigated
	if err := h.provider.Mount(c).Login(ctx, creds.Username, creds.Password, target); err != nil {
		c.Redirect(http.StatusSeeOther, loginURL(target))
	}
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.provider.Mount(c).Logout()
}

func loginURL(target string) string {
	if target == "" {
		return auth.LoginPath
	}
	q := url.Values{}
	q.Set("redirectedFrom", target)
	return auth.LoginPath + "?" + q.Encode()
}

type HomeHandler struct {
	view *Renderer
}

func NewHomeHandler(view *Renderer) *HomeHandler {
	return &HomeHandler{view: view}
}

func (h *HomeHandler) Show(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "home.html", "Início", nil)
}
