// Package catcommon provides context management utilities for the catalog
// service: the authenticated principal and the test-context escape hatch.
package catcommon

import (
	"context"

	"github.com/google/uuid"
)

// ctxKeyType represents the type for all context keys
type ctxKeyType string

const (
	ctxPrincipalKey   ctxKeyType = "CatalogPrincipal"
	ctxTestContextKey ctxKeyType = "CatalogTestContext"
)

// Principal is the authenticated identity attached to a request after the
// bearer token has been validated.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

// SetPrincipal sets the authenticated principal in the provided context.
func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// GetPrincipal retrieves the authenticated principal from the provided
// context, or nil when the request is unauthenticated.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(ctxPrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

// SetTestContext marks the context as a test context. Auth middleware skips
// token validation for test contexts.
func SetTestContext(ctx context.Context, isTest bool) context.Context {
	return context.WithValue(ctx, ctxTestContextKey, isTest)
}

// GetTestContext reports whether this is a test context.
func GetTestContext(ctx context.Context) bool {
	if isTest, ok := ctx.Value(ctxTestContextKey).(bool); ok {
		return isTest
	}
	return false
}
