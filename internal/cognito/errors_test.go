package cognito_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jaekwang-park/dailytasker/internal/cognito"
)

func TestLookupError_AllSentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{cognito.ErrUserNotFound, 401, "UNAUTHORIZED"},
		{cognito.ErrPoolNotFound, 500, "INTERNAL_ERROR"},
		{cognito.ErrTooManyRequests, 429, "TOO_MANY_REQUESTS"},
		{cognito.ErrNotAuthorized, 500, "INTERNAL_ERROR"},
		{cognito.ErrInvalidParameter, 401, "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			info, ok := cognito.LookupError(tt.err)
			if !ok {
				t.Fatalf("expected LookupError to find %v", tt.err)
			}
			if info.Status != tt.wantStatus {
				t.Errorf("status: got %d, want %d", info.Status, tt.wantStatus)
			}
			if info.Code != tt.wantCode {
				t.Errorf("code: got %q, want %q", info.Code, tt.wantCode)
			}
		})
	}
}

func TestLookupError_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("something failed: %w", cognito.ErrTooManyRequests)
	info, ok := cognito.LookupError(wrapped)
	if !ok {
		t.Fatal("expected LookupError to find wrapped error")
	}
	if info.Status != 429 {
		t.Errorf("status: got %d, want 429", info.Status)
	}
}

func TestLookupError_UnknownError(t *testing.T) {
	_, ok := cognito.LookupError(errors.New("unknown error"))
	if ok {
		t.Error("expected LookupError to return false for unknown error")
	}
}
