package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"brandhub/internal/config/configs"
	"brandhub/internal/core/domain"
)

// SessionCookie is the cookie consulted when no Authorization header is
// present.
const SessionCookie = "session"

var errNoSession = errors.New("no session")

type callerKey struct{}

// Sessions verifies HS256 session tokens and resolves the caller.
type Sessions struct {
	secret   []byte
	issuer   string
	loginURL string
}

// NewSessions returns a verifier for tokens signed with cfg.JWTSecret.
func NewSessions(cfg configs.Auth) *Sessions {
	return &Sessions{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer, loginURL: cfg.LoginURL}
}

// Issue signs a session token for userID valid for ttl.
func (s *Sessions) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and returns the caller it names.
func (s *Sessions) Verify(token string) (domain.Caller, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return domain.Caller{}, err
	}
	if claims.Subject == "" {
		return domain.Caller{}, errors.New("token subject is required")
	}
	return domain.Caller{UserID: claims.Subject}, nil
}

// Middleware resolves the caller from the request and stores it in the
// context. Requests without a valid session are redirected to login.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := sessionToken(r)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}
		caller, err := s.Verify(token)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
	})
}

func (s *Sessions) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := s.loginURL
	if u, err := url.Parse(s.loginURL); err == nil {
		q := u.Query()
		q.Set("next", r.URL.RequestURI())
		u.RawQuery = q.Encode()
		target = u.String()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func sessionToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return "", errNoSession
		}
		return token, nil
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errNoSession
}

// callerFrom returns the caller stored by Sessions.Middleware.
func callerFrom(ctx context.Context) domain.Caller {
	c, _ := ctx.Value(callerKey{}).(domain.Caller)
	return c
}
