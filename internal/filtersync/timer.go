package filtersync

import "time"

// Timer is the part of *time.Timer the controller uses.
type Timer interface {
	Stop() bool
}

// TimerFunc schedules fn to run once after d.
type TimerFunc func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
