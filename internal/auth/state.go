package auth

import "github.com/felipe-souza17/stock-front/internal/domain"

type Kind int

const (
	Loading Kind = iota
	Authenticated
	Anonymous
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// State is the current user as seen by a screen. User is set only when Kind
// is Authenticated.
type State struct {
	Kind Kind
	User *domain.Session
}

func Initial() State { return State{Kind: Loading} }

type EventType int

const (
	Mounted EventType = iota
	LoginStarted
	LoginSucceeded
	LoginFailed
	LoggedOut
)

type Event struct {
	Type EventType
	User *domain.Session
}

// Next is the transition function. It never looks at anything but its
// arguments.
func Next(s State, e Event) State {
	switch e.Type {
	case Mounted:
		if e.User != nil {
			return State{Kind: Authenticated, User: e.User}
		}
		return State{Kind: Anonymous}
	case LoginStarted:
		return State{Kind: Loading}
	case LoginSucceeded:
		if e.User == nil {
			return State{Kind: Anonymous}
		}
		return State{Kind: Authenticated, User: e.User}
	case LoginFailed, LoggedOut:
		return State{Kind: Anonymous}
	}
	return s
}

func (s State) IsAuthenticated() bool { return s.Kind == Authenticated && s.User != nil }
func (s State) IsLoading() bool       { return s.Kind == Loading }

func (s State) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.Role == domain.RoleAdmin
}

func (s State) IsStockRole() bool {
	return s.IsAuthenticated() && s.User.Role == domain.RoleStock
}
