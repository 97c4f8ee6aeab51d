package character

import "time"

// TimeProvider supplies the timestamps stamped onto characters
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock in UTC
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
