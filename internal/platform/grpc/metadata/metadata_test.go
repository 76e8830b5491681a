package metadata

import (
	"context"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("request id = %q, want req-1", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("empty context request id = %q, want empty", got)
	}
}

func TestIncomingValuesSkipBlankEntries(t *testing.T) {
	md := metadata.Pairs(
		RequestIDHeader, " ",
		RequestIDHeader, "req-2",
		UserIDHeader, " faculty-7 ",
	)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	if got := IncomingRequestID(ctx); got != "req-2" {
		t.Fatalf("incoming request id = %q, want req-2", got)
	}
	if got := UserIDFromContext(ctx); got != "faculty-7" {
		t.Fatalf("user id = %q, want faculty-7", got)
	}
}

func TestIncomingValuesWithoutMetadata(t *testing.T) {
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Fatalf("user id = %q, want empty", got)
	}
}
