package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	minuteWindow = time.Minute
	tenSecWindow = 10 * time.Second
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter caps swipes per acting account in two fixed windows.
type Limiter struct {
	store     WindowStore
	perMinute int
	per10Sec  int
}

func NewLimiter(store WindowStore, perMinute, per10Sec int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if per10Sec < 0 {
		per10Sec = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		per10Sec:  per10Sec,
	}
}

// AllowSwipe counts one swipe and reports whether it fits both windows.
// retryAfterSec is the wait until the tightest exceeded window resets.
func (l *Limiter) AllowSwipe(ctx context.Context, accountID int64) (int64, bool, error) {
	if accountID <= 0 {
		return 0, false, fmt.Errorf("invalid account id")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	windows := []struct {
		key    string
		window time.Duration
		limit  int
	}{
		{key: minuteKey(accountID), window: minuteWindow, limit: l.perMinute},
		{key: tenSecKey(accountID), window: tenSecWindow, limit: l.per10Sec},
	}

	retryAfterSec := int64(0)
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.IncrementWindow(ctx, w.key, w.window)
		if err != nil {
			return 0, false, err
		}
		if count > int64(w.limit) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}
	return 0, true, nil
}

func minuteKey(accountID int64) string {
	return "swipes:min:" + strconv.FormatInt(accountID, 10)
}

func tenSecKey(accountID int64) string {
	return "swipes:10s:" + strconv.FormatInt(accountID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	return max(sec, 1)
}
