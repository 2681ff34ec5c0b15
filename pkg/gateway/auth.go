package gateway

import (
	"context"
	"net/http"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// authRequest payload
type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. A wrong password comes
// back as a 401 whose message the login view shows verbatim.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/login", authRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and signs it in. Server-side policy makes the
// first registered account an admin; the client just displays the role it is
// told.
func (c *Client) Register(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, "", http.MethodPost, "/auth/register", authRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
