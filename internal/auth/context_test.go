package auth

import (
	"context"
	"testing"
)

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if got := UserID(ctx); got != 42 {
		t.Errorf("UserID = %d, want 42", got)
	}
}

func TestUserIDAnonymous(t *testing.T) {
	if got := UserID(context.Background()); got != 0 {
		t.Errorf("UserID = %d, want 0 for anonymous context", got)
	}
}
