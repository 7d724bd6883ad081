package v1handler

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"stamps/pkg/domain"
	"stamps/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the context key under which the authenticated user ID is
// stored.
const UserIDKey contextKey = "userID"

type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified with.
	PublicKey string
}

// SecHandler verifies RS256 bearer tokens and attaches the token subject to
// the request context as a domain.UserID.
type SecHandler struct {
	key *rsa.PublicKey
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}

	return &SecHandler{key: key}, nil
}

// HandleBearerAuth validates the token and returns a context carrying the
// authenticated user ID under UserIDKey.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(uid)), nil
}

// Middleware enforces bearer authentication on every wrapped route.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			writeError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user stored in the context by the
// middleware.
func UserID(ctx context.Context) (domain.UserID, bool) {
	uid, ok := ctx.Value(UserIDKey).(domain.UserID)

	return uid, ok
}
