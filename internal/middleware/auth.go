package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/varadpoddar/blog-services/internal/auth/token"
	customerrors "github.com/varadpoddar/blog-services/internal/customErrors"
)

type claimsKey struct{}

// RequireBearer rejects requests without a valid "Authorization: Bearer"
// token. Every rejection is the same 401; the reason is only logged.
func RequireBearer(tok token.Token) func(HandlerFunc) HandlerFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) error {
			log := logrus.WithField("path", r.URL.Path)

			header := r.Header.Get("Authorization")
			scheme, raw, ok := strings.Cut(header, " ")
			if header == "" || !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				log.Warn("Rejected request: missing bearer token")
				return customerrors.ErrUnauthorized
			}

			claims, err := tok.Parse(strings.TrimSpace(raw))
			if err != nil {
				log.WithError(err).Warn("Rejected request: invalid token")
				return customerrors.ErrUnauthorized
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			return next(w, r.WithContext(ctx))
		}
	}
}

func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*token.Claims)
	return claims, ok
}

// WithClaims is used by tests that exercise handlers behind RequireBearer.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
