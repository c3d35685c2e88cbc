package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aishort/showcase-server/internal/domain"
	domainerrors "github.com/aishort/showcase-server/internal/errors"
	"github.com/aishort/showcase-server/internal/service"
)

type contextKey string

const contextKeyUser contextKey = "user"

// authMiddleware resolves an optional bearer token. Requests without a valid
// token continue anonymously; handlers that need a user call requireUser.
func authMiddleware(auth *service.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.VerifyAccessToken(r.Context(), token)
			if err != nil {
				logger.Debug("ignoring invalid bearer token", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyUser, user)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// userFromContext returns the authenticated user or nil.
func userFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(contextKeyUser).(*domain.User)
	return user
}

func requireUser(ctx context.Context) (*domain.User, error) {
	user := userFromContext(ctx)
	if user == nil {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return user, nil
}
