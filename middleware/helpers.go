package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/services"
)

type contextKey string

const userContextKey contextKey = "user"

var errNoClaims = errors.New("user claims not found in context")

func WithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*services.Claims, error) {
	claims, ok := ctx.Value(userContextKey).(*services.Claims)
	if !ok || claims == nil {
		return nil, errNoClaims
	}
	return claims, nil
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// ActorFromContext converts the authenticated claims into a services.Actor.
func ActorFromContext(ctx context.Context) (services.Actor, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// writeError mirrors the {"error": ...} envelope used by handlers.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
