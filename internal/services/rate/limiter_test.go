package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/ivankudzin/tailmates/internal/repo/redis"
)

func TestLimiterBlocksOn10SecondWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 100, 2)
	ctx := context.Background()
	accountID := int64(42)

	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.AllowSwipe(ctx, accountID)
		if err != nil {
			t.Fatalf("allow swipe #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on swipe #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowSwipe(ctx, accountID)
	if err != nil {
		t.Fatalf("allow swipe #3: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on third swipe in 10s window")
	}
	if retryAfter <= 0 || retryAfter > 10 {
		t.Fatalf("unexpected retry_after: %d", retryAfter)
	}

	mr.FastForward(11 * time.Second)

	retryAfter, allowed, err = limiter.AllowSwipe(ctx, accountID)
	if err != nil {
		t.Fatalf("allow swipe after 10s window: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("expected swipe allowed after window reset, got allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func TestLimiterKeepsAccountsIndependent(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(redrepo.NewRateRepo(client), 1, 0)
	ctx := context.Background()

	if _, allowed, err := limiter.AllowSwipe(ctx, 1); err != nil || !allowed {
		t.Fatalf("first account first swipe: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowSwipe(ctx, 2); err != nil || !allowed {
		t.Fatalf("second account first swipe: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, _ := limiter.AllowSwipe(ctx, 1); allowed {
		t.Fatalf("first account second swipe must be blocked by minute window")
	}
}

func TestLimiterPropagatesStoreError(t *testing.T) {
	limiter := NewLimiter(windowStoreErrStub{err: errors.New("redis unavailable")}, 10, 10)

	if _, _, err := limiter.AllowSwipe(context.Background(), 7); err == nil {
		t.Fatalf("expected store error")
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	return mr, goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

type windowStoreErrStub struct {
	err error
}

func (s windowStoreErrStub) IncrementWindow(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, s.err
}
