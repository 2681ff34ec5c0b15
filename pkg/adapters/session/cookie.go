package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// Fixed storage keys. The credential travels as-is; the user half is an
// HS256-signed claim set so a tampered cookie reads as corrupt rather than
// as a forged identity.
const (
	TokenCookie = "linkylink_token"
	UserCookie  = "linkylink_user"
)

const cookieTTL = 30 * 24 * time.Hour

type userClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CookieStore keeps the session in two browser cookies under fixed keys.
// Both are written on login and expired on logout, so a reader either sees
// the full pair or nothing.
type CookieStore struct {
	secret   []byte
	isSecure bool
}

func NewCookieStore(secret string, isProduction bool) *CookieStore {
	return &CookieStore{
		secret:   []byte(secret),
		isSecure: isProduction,
	}
}

// Login writes both entries. The response carries both Set-Cookie headers or
// neither (signing failure aborts before anything is written).
func (s *CookieStore) Login(w http.ResponseWriter, credential string, user domain.SessionUser) error {
	claims := userClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.Username,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	expires := time.Now().Add(cookieTTL)
	http.SetCookie(w, s.cookie(TokenCookie, credential, expires))
	http.SetCookie(w, s.cookie(UserCookie, signed, expires))
	return nil
}

// Logout expires both entries.
func (s *CookieStore) Logout(w http.ResponseWriter) {
	expired := time.Now().Add(-1 * time.Hour)
	http.SetCookie(w, s.cookie(TokenCookie, "", expired))
	http.SetCookie(w, s.cookie(UserCookie, "", expired))
}

// Load rehydrates the session from the request. Missing or corrupt cookies
// yield a nil session, never an error; a credential is trusted until the
// server rejects it, so there is no expiry check here beyond the cookie's
// own lifetime.
func (s *CookieStore) Load(r *http.Request) *domain.Session {
	tokenCookie, err := r.Cookie(TokenCookie)
	if err != nil || tokenCookie.Value == "" {
		return nil
	}
	userCookie, err := r.Cookie(UserCookie)
	if err != nil || userCookie.Value == "" {
		return nil
	}

	claims := &userClaims{}
	parsed, err := jwt.ParseWithClaims(userCookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return nil
	}

	return &domain.Session{
		User:       domain.SessionUser{Username: claims.Subject, Role: role},
		Credential: tokenCookie.Value,
	}
}

func (s *CookieStore) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
