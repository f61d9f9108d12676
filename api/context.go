package api

import (
	"context"
)

type keyType string

const (
	adminKey   keyType = "admin"
	visitorKey keyType = "visitor"
)

// ctxWithAdmin records whether the request carries a valid admin session
func ctxWithAdmin(ctx context.Context, authenticated bool) context.Context {
	return context.WithValue(ctx, adminKey, authenticated)
}

// ctxIsAdmin reports the flag set by authenticate; false when it never ran
func ctxIsAdmin(ctx context.Context) bool {
	authenticated, ok := ctx.Value(adminKey).(bool)
	return ok && authenticated
}

func ctxWithVisitor(ctx context.Context, v *visitor) context.Context {
	return context.WithValue(ctx, visitorKey, v)
}

// ctxGetVisitor returns the view state attached by the session middleware
func ctxGetVisitor(ctx context.Context) *visitor {
	v, _ := ctx.Value(visitorKey).(*visitor)
	return v
}
