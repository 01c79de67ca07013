package goAccess

import (
	"context"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	ctx := WithClientIP(context.Background(), "192.0.2.1")
	ctx = WithRequestID(ctx, "req-7")

	if got := clientIPFromContext(ctx); got != "192.0.2.1" {
		t.Fatalf("clientIPFromContext = %q", got)
	}
	if got := requestIDFromContext(ctx); got != "req-7" {
		t.Fatalf("requestIDFromContext = %q", got)
	}
}

func TestContextHelpersAbsent(t *testing.T) {
	if got := clientIPFromContext(context.Background()); got != "" {
		t.Fatalf("clientIPFromContext on empty ctx = %q", got)
	}
	if got := requestIDFromContext(nil); got != "" {
		t.Fatalf("requestIDFromContext on nil ctx = %q", got)
	}
}
