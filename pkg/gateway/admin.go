package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// roleRequest payload
type roleRequest struct {
	Role domain.Role `json:"role"`
}

// Users lists all accounts. Admin only; non-admin credentials come back as a
// server-side error.
func (c *Client) Users(ctx context.Context, credential string) ([]domain.UserAccount, error) {
	var out []domain.UserAccount
	if err := c.do(ctx, credential, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUserRole sets a user's role to one of the two fixed values.
func (c *Client) UpdateUserRole(ctx context.Context, credential, username string, role domain.Role) (*domain.UserAccount, error) {
	var out domain.UserAccount
	path := "/admin/users/" + url.PathEscape(username) + "/role"
	if err := c.do(ctx, credential, http.MethodPut, path, roleRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account. The console blocks self-deletion before
// this is ever called.
func (c *Client) DeleteUser(ctx context.Context, credential, username string) error {
	return c.do(ctx, credential, http.MethodDelete, "/admin/users/"+url.PathEscape(username), nil, nil)
}

// AdminLinks lists every link globally.
func (c *Client) AdminLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	var out []domain.Link
	if err := c.do(ctx, credential, http.MethodGet, "/admin/links", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminDeleteLink removes any link regardless of owner.
func (c *Client) AdminDeleteLink(ctx context.Context, credential, keyword string) error {
	return c.do(ctx, credential, http.MethodDelete, "/admin/links/"+url.PathEscape(keyword), nil, nil)
}
