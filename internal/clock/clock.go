package clock

import "time"

// Clock supplies the current time. Services hold one instead of calling
// time.Now so dirtiness, streak, and hour-of-day logic stays testable.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Test use only.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
