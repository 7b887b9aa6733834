package scope

import (
	"context"
	"fmt"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/model"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
)

// NewScope builds model.Scope from verified claims.
func NewScope(claims *jwt.Claims) (model.Scope, error) {
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Scope{}, fmt.Errorf("%w: %v", ErrInvalidRole, err)
	}
	return model.Scope{UserID: claims.Subject, Role: role}, nil
}

// SetScopeToContext attaches model.Scope to context.
func SetScopeToContext(ctx context.Context, scope model.Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, scope)
}

// GetScopeFromContext returns model.Scope from context.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	scope, ok := ctx.Value(scopeCtxKey{}).(model.Scope)
	return scope, ok
}

// MustScope returns the scope from ctx or ErrMissingScope.
func MustScope(ctx context.Context) (model.Scope, error) {
	scope, ok := GetScopeFromContext(ctx)
	if !ok || scope.UserID == "" {
		return model.Scope{}, ErrMissingScope
	}
	return scope, nil
}
