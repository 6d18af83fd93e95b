package poll

import (
	"strings"
	"time"
)

// Backoff tracks the poll interval. Intervals are ordered fastest first.
// The zero Index is the fastest interval.
type Backoff struct {
	Intervals []time.Duration
	Index     int
	Failures  int
}

func NewBackoff(intervals []time.Duration) *Backoff {
	if len(intervals) == 0 {
		panic("poll: backoff needs at least one interval")
	}
	return &Backoff{Intervals: append([]time.Duration(nil), intervals...)}
}

// OnSuccess clears the failure count and, only if there were failures,
// steps one interval faster.
func (b *Backoff) OnSuccess() {
	if b.Failures == 0 {
		return
	}
	b.Failures = 0
	if b.Index > 0 {
		b.Index--
	}
}

// OnFailure counts the failure and steps one interval slower, stopping at
// the slowest.
func (b *Backoff) OnFailure() {
	b.Failures++
	if b.Index < len(b.Intervals)-1 {
		b.Index++
	}
}

func (b *Backoff) Current() time.Duration {
	return b.Intervals[b.Index]
}

// String renders the schedule as "1s → 5s → 10s".
func (b *Backoff) String() string {
	parts := make([]string, len(b.Intervals))
	for i, d := range b.Intervals {
		parts[i] = d.String()
	}
	return strings.Join(parts, " → ")
}
