package clock

import "time"

// Clock supplies wall-clock timestamps. Services take a Clock instead of
// calling time.Now so tests and the reaper can control time.
type Clock interface {
	Now() time.Time
}

// System is the real clock. All timestamps are taken in UTC.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
