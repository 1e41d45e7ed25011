package core

import "context"

// DeletePrompt is the question asked before a note is deleted.
const DeletePrompt = "Delete this note?"

// Confirmer asks the user to accept or reject a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

type contextKey string

// ConfirmedKey is the context key for passing an answer that was already
// collected from the user (e.g. a --yes flag or a request header).
// It takes precedence over the store's Confirmer.
const ConfirmedKey contextKey = "confirmed"

// WithConfirmed returns a context carrying a pre-collected confirmation answer.
func WithConfirmed(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, ConfirmedKey, ok)
}

func confirmed(ctx context.Context, c Confirmer) bool {
	if ok, set := ctx.Value(ConfirmedKey).(bool); set {
		return ok
	}
	if c == nil {
		return false
	}
	return c.Confirm(ctx, DeletePrompt)
}
