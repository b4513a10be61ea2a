package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleAdmin = "admin"

var errNoPrincipal = errors.New("no authenticated principal")

// Claims is the bearer token payload. Subject is the account id.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller.
type Principal struct {
	AccountID uuid.UUID
	Admin     bool
}

type principalKey struct{}

// IssueToken signs an HS256 token for accountID.
func IssueToken(secret []byte, accountID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// ParseToken verifies an HS256 token and returns its principal.
func ParseToken(secret []byte, raw string) (Principal, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, fmt.Errorf("parse token: %w", err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("token subject: %w", err)
	}

	return Principal{AccountID: id, Admin: claims.Role == RoleAdmin}, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's Principal in the request context.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearer = "Bearer "

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearer) {
				writeError(w, http.StatusUnauthorized, "bearer token required")
				return
			}

			p, err := ParseToken(secret, strings.TrimPrefix(header, bearer))
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", slog.Any("err", err))

				if errors.Is(err, jwt.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "token expired")
					return
				}

				writeError(w, http.StatusUnauthorized, "invalid token")

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := principalFrom(r.Context())
		if err != nil || !p.Admin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func principalFrom(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return Principal{}, errNoPrincipal
	}

	return p, nil
}
