package utils

import "time"

// SystemClock is the production clock; services take a Now() dependency so
// day-boundary checks and the default-schedule generator stay deterministic
// under test.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
