// Package appctx carries request-scoped values: the authenticated
// caller and the request trace. Handlers put them in, services and the
// logger read them out.
package appctx

import "context"

// UserContext is the authenticated caller as decoded from the access
// token. OrganizationID scopes every query the request makes.
type UserContext struct {
	UserID         string
	OrganizationID string
	Email          string
	Roles          []string
	IsAdmin        bool
}

type userKey struct{}

// WithUser stores the caller in ctx.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the caller from ctx, or nil for unauthenticated
// requests.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

// GetUserID returns the caller's id, or "".
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetOrganizationID returns the caller's organization, or "".
func GetOrganizationID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.OrganizationID
	}
	return ""
}

// HasRole reports whether the caller holds the role. System admins
// pass every role check.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	if u.IsAdmin {
		return true
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
