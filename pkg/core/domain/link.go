package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Link represents a go-link: a keyword that redirects to a destination URL.
type Link struct {
	Keyword       string `json:"keyword"`
	URL           string `json:"url"`
	Description   string `json:"description,omitempty"`
	OwnerUsername string `json:"ownerUsername"`
	ClickCount    int64  `json:"clickCount"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// EditableBy reports whether the given user may edit or delete the link.
// Only the owner or an admin can touch a link.
func (l Link) EditableBy(username string, admin bool) bool {
	return admin || l.OwnerUsername == username
}

var keywordPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Keywords that would conflict with server routes and cannot be go links.
var reservedKeywords = map[string]struct{}{
	"api":         {},
	"app":         {},
	"static":      {},
	"favicon.ico": {},
	"health":      {},
}

// NormalizeKeyword lowercases and trims a keyword the way the server does,
// so validation and display agree with what the server will store.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// ValidateKeyword checks a normalized keyword against the format the server
// enforces. The checks run before any network call; uniqueness stays
// server-side only.
func ValidateKeyword(keyword string) error {
	if _, ok := reservedKeywords[keyword]; ok {
		return fmt.Errorf("'%s' is a reserved keyword", keyword)
	}
	if len(keyword) == 0 || len(keyword) > 50 {
		return fmt.Errorf("keyword must be 1-50 characters")
	}
	if !keywordPattern.MatchString(keyword) {
		return fmt.Errorf("keyword can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

// NormalizeURL prefixes https:// when no scheme is present, mirroring the
// server-side normalization so the rendered link matches what gets stored.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}
