package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(context.Background())
	if err := s.Add("not a cron spec", "broken", func(context.Context) {}); err == nil {
		t.Error("expected error for invalid cron spec")
	}
	if err := s.Add("0 9 * * *", "daily", func(context.Context) {}); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestStopWaitsForRunningJob(t *testing.T) {
	s := New(context.Background())

	started := make(chan struct{})
	err := s.Add("@every 1s", "tick", func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Log("job did not fire within 3s; stopping anyway")
	}
	s.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	s := New(context.Background())
	s.Stop() // must not hang or panic
}
