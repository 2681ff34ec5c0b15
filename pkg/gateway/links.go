package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// linkRequest payload
type linkRequest struct {
	Keyword     string `json:"keyword"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// MyLinks lists the links owned by the calling user.
func (c *Client) MyLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	var out []domain.Link
	if err := c.do(ctx, credential, http.MethodGet, "/links", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllLinks lists every link in the public directory.
func (c *Client) AllLinks(ctx context.Context, credential string) ([]domain.Link, error) {
	var out []domain.Link
	if err := c.do(ctx, credential, http.MethodGet, "/links/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLink registers a new keyword. Uniqueness is only decided server-side;
// a taken keyword comes back as a RequestError with the server's message.
func (c *Client) CreateLink(ctx context.Context, credential, keyword, linkURL, description string) (*domain.Link, error) {
	var out domain.Link
	body := linkRequest{Keyword: keyword, URL: linkURL, Description: description}
	if err := c.do(ctx, credential, http.MethodPost, "/links", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLink changes url/description of an existing link. The keyword is
// immutable; it only selects the link.
func (c *Client) UpdateLink(ctx context.Context, credential, keyword, linkURL, description string) (*domain.Link, error) {
	var out domain.Link
	body := linkRequest{Keyword: keyword, URL: linkURL, Description: description}
	if err := c.do(ctx, credential, http.MethodPut, "/links/"+url.PathEscape(keyword), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteLink removes a link by keyword.
func (c *Client) DeleteLink(ctx context.Context, credential, keyword string) error {
	return c.do(ctx, credential, http.MethodDelete, "/links/"+url.PathEscape(keyword), nil, nil)
}
