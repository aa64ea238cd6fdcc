package deck

import "github.com/bookswipe/bookswipe-server/internal/domain"

// Direction is the discrete outcome of a swipe.
type Direction string

const (
	// DirectionLeft is a pass.
	DirectionLeft Direction = "left"
	// DirectionRight is a like.
	DirectionRight Direction = "right"
)

func (d Direction) Liked() bool {
	return d == DirectionRight
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionLeft:
		return DirectionLeft, nil
	case DirectionRight:
		return DirectionRight, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// DirectionFromOffset maps a released drag to a discrete outcome. The
// boolean is false when the drag never crossed the threshold; the card
// then animates back to neutral and no state transition happens.
func DirectionFromOffset(offset, threshold float64) (Direction, bool) {
	switch {
	case offset >= threshold:
		return DirectionRight, true
	case offset <= -threshold:
		return DirectionLeft, true
	default:
		return "", false
	}
}
