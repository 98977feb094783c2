package guard

import "time"

// Clock provides the ambient "current time" read used for deadline
// comparisons, allowing for testing. Readings are expected to be monotonically
// non-decreasing.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by the standard time package.
func SystemClock() Clock {
	return systemClock{}
}
