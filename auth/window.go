package auth

import (
	"fmt"
	"time"
)

// DefaultWindow accepts timestamps up to five minutes in the past and none
// in the future, matching the Target365 service.
var DefaultWindow = Window{Past: 5 * time.Minute}

// Window is the replay window for header timestamps. Past and Future are
// independent so deployments can choose a one-sided or two-sided check.
type Window struct {
	// Past is how far behind the local clock a timestamp may be.
	Past time.Duration

	// Future is how far ahead of the local clock a timestamp may be.
	Future time.Duration
}

// SymmetricWindow returns a Window that tolerates d of drift both ways.
func SymmetricWindow(d time.Duration) Window {
	return Window{Past: d, Future: d}
}

// Check returns ErrClockDriftExceeded when timestamp (Unix seconds) is
// outside [now-Past, now+Future]. Bounds are inclusive and compared in
// whole seconds.
func (w Window) Check(timestamp int64, now time.Time) error {
	current := now.Unix()
	from := current - int64(w.Past/time.Second)
	to := current + int64(w.Future/time.Second)

	if timestamp < from || timestamp > to {
		return fmt.Errorf("%w: timestamp %d outside [%d, %d]", ErrClockDriftExceeded, timestamp, from, to)
	}

	return nil
}
