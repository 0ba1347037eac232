package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/felipe-souza17/stock-front/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	CookieName = "user_auth"
	MaxAge     = 24 * time.Hour
)

var ErrIncomplete = errors.New("session record lacks username or role")

// Decode parses a cookie value that has already been unescaped.
func Decode(raw string) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	if !s.Complete() {
		return nil, ErrIncomplete
	}
	return &s, nil
}

// Store keeps the session in the user_auth cookie. Gin percent-encodes the
// value on write and decodes it on read.
type Store struct {
	secure bool
	log    *logrus.Logger
}

func NewStore(secure bool, logger *logrus.Logger) *Store {
	return &Store{secure: secure, log: logger}
}

func (s *Store) Save(c *gin.Context, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, string(payload), int(MaxAge.Seconds()), "/", "", s.secure, true)
	return nil
}

// Read returns nil when there is no usable session. A malformed cookie is
// deleted on the way out.
func (s *Store) Read(c *gin.Context) *domain.Session {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	sess, err := Decode(raw)
	if err != nil {
		s.log.Warnf("Session: discarding unreadable %s cookie: %v", CookieName, err)
		s.Clear(c)
		return nil
	}
	return sess
}

func (s *Store) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.secure, true)
}
