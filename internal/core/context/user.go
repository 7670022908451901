// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Role names as issued by the backend.
const (
	RoleAdministrator = "Administrador"
	RoleEmployee      = "Empleado"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserName string
	Role     string
	// Token is the raw bearer token, forwarded to the backend on behalf of the user.
	Token string
}

// IsAdmin reports whether the user holds the administrator role.
func (u *UserContext) IsAdmin() bool {
	return u != nil && u.Role == RoleAdministrator
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserName returns user name from context or empty string.
func GetUserName(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserName
	}
	return ""
}

// GetRole returns the user's role or empty string.
func GetRole(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Role
	}
	return ""
}

// GetToken returns the bearer token to forward upstream, if any.
func GetToken(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Token
	}
	return ""
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}
