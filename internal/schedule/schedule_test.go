package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"savekeeper/internal/logging"
)

func TestValidate(t *testing.T) {
	for _, spec := range []string{"@hourly", "@every 30m", "0 */2 * * *"} {
		if err := Validate(spec); err != nil {
			t.Fatalf("expected %q to be valid: %v", spec, err)
		}
	}
	for _, spec := range []string{"", "every hour", "* * *"} {
		if err := Validate(spec); err == nil {
			t.Fatalf("expected %q to be rejected", spec)
		}
	}
}

func TestWatchTriggersUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	var calls atomic.Int32
	if err := Watch(ctx, "@every 1s", logging.Logger{}, func() { calls.Add(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() < 1 {
		t.Fatalf("expected at least one trigger")
	}
}

func TestWatchRejectsBadSpec(t *testing.T) {
	if err := Watch(context.Background(), "nonsense", logging.Logger{}, func() {}); err == nil {
		t.Fatalf("expected error")
	}
}
