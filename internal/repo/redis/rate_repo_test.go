package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestIncrementWindowCountsAndExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := NewClient(mr.Addr(), "", 0)
	defer func() { _ = client.Close() }()

	repo := NewRateRepo(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, ttl, err := repo.IncrementWindow(ctx, "swipes:1m:7", time.Minute)
		if err != nil {
			t.Fatalf("increment window: %v", err)
		}
		if count != want {
			t.Fatalf("unexpected count: got %d want %d", count, want)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Fatalf("unexpected ttl: %s", ttl)
		}
	}

	mr.FastForward(61 * time.Second)

	count, _, err := repo.IncrementWindow(ctx, "swipes:1m:7", time.Minute)
	if err != nil {
		t.Fatalf("increment after expiry: %v", err)
	}
	if count != 1 {
		t.Fatalf("window must reset after expiry, got %d", count)
	}
}

func TestIncrementWindowRejectsInvalidPayload(t *testing.T) {
	repo := NewRateRepo(nil)
	if _, _, err := repo.IncrementWindow(context.Background(), "k", time.Second); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
