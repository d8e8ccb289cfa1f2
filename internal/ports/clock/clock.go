// Package clock abstracts wall-clock time so services can be tested
// against a controllable clock.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the real clock, in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }
