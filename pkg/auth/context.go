package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const editGrantKey contextKey = "edit_grant"

// ErrEditGrantNotFound is returned when no edit grant exists in the request context.
// Handlers should return 403 when this error occurs.
var ErrEditGrantNotFound = errors.New("edit grant not found in context")

// EditGrant authorizes one edit of one record. It is issued after the
// protected-action gate accepts the secret for an edit.
type EditGrant struct {
	RecordType string
	RecordID   string
}

// Matches reports whether the grant covers the given record.
func (g EditGrant) Matches(recordType, recordID string) bool {
	return g.RecordType == recordType && g.RecordID == recordID && recordID != ""
}

// EditGrantFromCtx extracts the verified edit grant from the request context.
// Returns ErrEditGrantNotFound if RequireEditGrant did not run or found nothing.
func EditGrantFromCtx(ctx context.Context) (EditGrant, error) {
	g, ok := ctx.Value(editGrantKey).(EditGrant)
	if !ok || g.RecordID == "" {
		return EditGrant{}, ErrEditGrantNotFound
	}
	return g, nil
}

// WithEditGrant returns a new context with the given grant attached.
// Used by RequireEditGrant after validating the session.
func WithEditGrant(ctx context.Context, g EditGrant) context.Context {
	return context.WithValue(ctx, editGrantKey, g)
}
