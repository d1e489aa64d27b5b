package domain

import "time"

// TimerSession is a currently running (or already terminated) timer.
// At most one session per user may have IsActive true at any instant;
// the store enforces this with a partial unique index.
type TimerSession struct {
	ID            string
	UserID        string
	ProjectID     string
	TaskID        string
	StartTime     time.Time
	LastHeartbeat time.Time
	IsActive      bool
	Date          string // UTC calendar date of StartTime, YYYY-MM-DD
}

// Stale reports whether the session's heartbeat is older than threshold at
// the given instant.
func (s *TimerSession) Stale(now time.Time, threshold time.Duration) bool {
	return now.Sub(s.LastHeartbeat) > threshold
}
