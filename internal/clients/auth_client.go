package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felipe-souza17/stock-front/internal/domain"
)

// AuthClient wraps POST /auth/login. The credential check itself lives on
// the remote API.
type AuthClient struct {
	api *API
}

func NewAuthClient(api *API) *AuthClient {
	return &AuthClient{api: api}
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	var sess domain.Session
	creds := domain.Credentials{Username: username, Password: password}
	if err := c.api.do(ctx, http.MethodPost, "/auth/login", creds, &sess, "Erro ao fazer login."); err != nil {
		c.api.log.Warnf("AuthClient: login failed for %s: %v", username, err)
		return nil, err
	}
	if !sess.Complete() {
		return nil, fmt.Errorf("login response for %s is missing username or role", username)
	}
	c.api.log.Infof("AuthClient: login succeeded for UserID: %d", sess.UserID)
	return &sess, nil
}
