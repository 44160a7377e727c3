package reservation

import (
	"time"
)

// BufferWindow is the interval [t-buffer, t+buffer] around a requested
// reservation time. No other non-exempt BOOKED reservation may fall inside
// it; both bounds are inclusive.
type BufferWindow struct {
	start time.Time
	end   time.Time
}

func NewBufferWindow(t time.Time, bufferMinutes int) BufferWindow {
	buffer := time.Duration(bufferMinutes) * time.Minute
	return BufferWindow{
		start: t.Add(-buffer),
		end:   t.Add(buffer),
	}
}

func (w BufferWindow) Start() time.Time { return w.start }
func (w BufferWindow) End() time.Time   { return w.end }

func (w BufferWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

func (w BufferWindow) String() string {
	return w.start.Format(time.RFC3339) + " - " + w.end.Format(time.RFC3339)
}
