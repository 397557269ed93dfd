package logger

import "context"

type ctxKey struct{}

// NewContext guarda l en ctx para los handlers de la request.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext devuelve el logger de ctx o uno que descarta todo.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return NewNop()
}
