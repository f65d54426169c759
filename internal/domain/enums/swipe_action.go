package enums

import "strings"

type SwipeAction string

const (
	SwipeActionLike SwipeAction = "LIKE"
	SwipeActionPass SwipeAction = "PASS"
)

// ParseSwipeAction accepts case-insensitive input with surrounding spaces.
func ParseSwipeAction(input string) (SwipeAction, bool) {
	switch value := SwipeAction(strings.ToUpper(strings.TrimSpace(input))); value {
	case SwipeActionLike, SwipeActionPass:
		return value, true
	default:
		return "", false
	}
}

func (a SwipeAction) IsPositive() bool {
	return a == SwipeActionLike
}
