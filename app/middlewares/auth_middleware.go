package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/services"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (*services.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the parsed claims in the request context.
func AuthMiddleware(tokens TokenParser, rnd *render.Render, logger *zap.Logger) func(http.Handler) http.Handler {
	location := helpers.Location("AuthMiddleware", "Authenticate")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(raw))
			if err != nil {
				logger.Info(location+": token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request when the caller holds any of roles.
// It must run after AuthMiddleware.
func RequireRoles(rnd *render.Render, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			if !claims.HasRole(roles...) {
				rnd.JSON(w, http.StatusForbidden, map[string]string{"error": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(helpers.ContextKeyClaims).(*services.Claims)
	return claims
}
