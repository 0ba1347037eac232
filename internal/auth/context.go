package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/felipe-souza17/stock-front/internal/clients"
	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/sirupsen/logrus"
)

// Authenticator performs the remote credential exchange.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
}

// SessionStore is the session cookie bound to one request.
type SessionStore interface {
	Read() *domain.Session
	Save(domain.Session) error
	Clear()
}

type Navigator interface {
	Navigate(path string)
}

// Notifier shows the outcome of a login to the user. It must be called
// before navigation so the message survives the redirect.
type Notifier interface {
	Success(text string)
	Error(text string)
}

const (
	LoginSucceededMessage = "Login realizado com sucesso!"
	LoginFailedMessage    = "Erro ao fazer login."
)

const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Context is the per-request auth handle handed to screens.
type Context struct {
	state    State
	api      Authenticator
	store    SessionStore
	nav      Navigator
	notify   Notifier
	log      logrus.FieldLogger
	observer func(State)
}

func newContext(api Authenticator, store SessionStore, nav Navigator, log logrus.FieldLogger, observer func(State)) *Context {
	ac := &Context{
		state:    Initial(),
		api:      api,
		store:    store,
		nav:      nav,
		log:      log,
		observer: observer,
	}
	ac.emit()
	ac.apply(Event{Type: Mounted, User: store.Read()})
	return ac
}

func (a *Context) apply(e Event) {
	a.state = Next(a.state, e)
	a.emit()
}

func (a *Context) emit() {
	if a.observer != nil {
		a.observer(a.state)
	}
}

func (a *Context) State() State          { return a.state }
func (a *Context) User() *domain.Session { return a.state.User }
func (a *Context) IsAuthenticated() bool { return a.state.IsAuthenticated() }
func (a *Context) IsAdmin() bool         { return a.state.IsAdmin() }
func (a *Context) IsStockRole() bool     { return a.state.IsStockRole() }
func (a *Context) IsLoading() bool       { return a.state.IsLoading() }

// Login exchanges credentials, stores the session and navigates to target
// (or home when target is not a safe local path). The error is returned for
// the caller to display.
func (a *Context) Login(ctx context.Context, username, password, target string) error {
	a.apply(Event{Type: LoginStarted})

	sess, err := a.api.Login(ctx, username, password)
	if err != nil {
		a.log.Warnf("Auth: login failed for %s: %v", username, err)
		a.apply(Event{Type: LoginFailed})
		if a.notify != nil {
			a.notify.Error(clients.Message(err, LoginFailedMessage))
		}
		return err
	}
	if err := a.store.Save(*sess); err != nil {
		a.apply(Event{Type: LoginFailed})
		return fmt.Errorf("failed to store session: %w", err)
	}

	a.apply(Event{Type: LoginSucceeded, User: sess})
	a.log.Infof("Auth: %s logged in as %s", sess.Username, sess.Role)
	if a.notify != nil {
		a.notify.Success(LoginSucceededMessage)
	}
	a.nav.Navigate(SafeRedirect(target))
	return nil
}

func (a *Context) Logout() {
	if a.state.User != nil {
		a.log.Infof("Auth: %s logged out", a.state.User.Username)
	}
	a.store.Clear()
	a.apply(Event{Type: LoggedOut})
	a.nav.Navigate(LoginPath)
}

// SafeRedirect keeps post-login navigation on this site.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") ||
		strings.HasPrefix(target, "/\\") || strings.HasPrefix(target, LoginPath) {
		return HomePath
	}
	return target
}
