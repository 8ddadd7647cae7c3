package logger

import (
	"context"
	"testing"
)

func TestFromContext(t *testing.T) {
	base := New()
	ctx := context.WithValue(context.Background(), ContextKey, base)

	if got := FromContext(ctx); got != base {
		t.Error("expected logger from ctx")
	}

	// missing logger falls back to a fresh one instead of panicking
	if got := FromContext(context.Background()); got == nil {
		t.Error("expected fallback logger")
	}
}
