package auth

import (
	"net/http"

	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/felipe-souza17/stock-front/internal/flash"
	"github.com/felipe-souza17/stock-front/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Provider mounts a Context for each request.
type Provider struct {
	api      Authenticator
	store    *session.Store
	log      *logrus.Logger
	observer func(State)
}

func NewProvider(api Authenticator, store *session.Store, logger *logrus.Logger) *Provider {
	return &Provider{api: api, store: store, log: logger}
}

// WithObserver registers fn to receive every state a mounted Context enters.
func (p *Provider) WithObserver(fn func(State)) *Provider {
	p.observer = fn
	return p
}

func (p *Provider) Mount(c *gin.Context) *Context {
	ac := newContext(
		p.api,
		&ginStore{store: p.store, c: c},
		ginNavigator{c: c},
		p.log.WithField("component", "auth"),
		p.observer,
	)
	ac.notify = flashNotifier{c: c}
	return ac
}

type flashNotifier struct {
	c *gin.Context
}

func (n flashNotifier) Success(text string) { flash.SetSuccess(n.c, text) }
func (n flashNotifier) Error(text string)   { flash.SetError(n.c, text) }

type ginStore struct {
	store *session.Store
	c     *gin.Context
}

func (s *ginStore) Read() *domain.Session         { return s.store.Read(s.c) }
func (s *ginStore) Save(sess domain.Session) error { return s.store.Save(s.c, sess) }
func (s *ginStore) Clear()                        { s.store.Clear(s.c) }

type ginNavigator struct {
	c *gin.Context
}

// Navigate answers with 303 so a POST is followed by a GET.
func (n ginNavigator) Navigate(path string) {
	n.c.Redirect(http.StatusSeeOther, path)
}
