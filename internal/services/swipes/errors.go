package swipes

import "errors"

var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidAction        = errors.New("invalid action")
	ErrSelfOwned            = errors.New("cannot swipe on a pet of the same owner")
	ErrDuplicateInteraction = errors.New("interaction already recorded")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}
