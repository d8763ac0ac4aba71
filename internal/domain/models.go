package domain

import "time"

// The watched site. Both are fixed; there is no per-run configuration.
const (
	TargetURL = "https://tickets.cafonline.com/"
	SiteName  = "tickets.cafonline.com"
)

// TimestampLayout renders local time as YYYY-MM-DD HH:MM:SS.
const TimestampLayout = "2006-01-02 15:04:05"

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// State is the terminal state of a single run.
type State int

const (
	StateStillWaiting State = iota
	StateNotified
	StateNotifyFailed
)

func (s State) String() string {
	switch s {
	case StateStillWaiting:
		return "still_waiting"
	case StateNotified:
		return "notified_ok"
	case StateNotifyFailed:
		return "notify_failed"
	default:
		return "unknown"
	}
}

// ExitCode maps a state to the process exit code expected by the scheduler.
// Waiting is the normal steady state and is not an error.
func (s State) ExitCode() int {
	if s == StateNotifyFailed {
		return 1
	}
	return 0
}
