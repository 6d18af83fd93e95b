package poll

import (
	"testing"
	"time"
)

var schedule = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

func TestBackoffStartsFastest(t *testing.T) {
	b := NewBackoff(schedule)
	if b.Current() != time.Second || b.Index != 0 || b.Failures != 0 {
		t.Errorf("unexpected initial state: %+v", b)
	}
}

func TestBackoffFailuresEscalateAndCap(t *testing.T) {
	b := NewBackoff(schedule)

	for n := 1; n <= 8; n++ {
		prev := b.Index
		b.OnFailure()
		if b.Index-prev > 1 {
			t.Fatalf("failure %d moved index by %d", n, b.Index-prev)
		}
		want := n
		if want > len(schedule)-1 {
			want = len(schedule) - 1
		}
		if b.Index != want {
			t.Errorf("after %d failures index = %d, want %d", n, b.Index, want)
		}
		if b.Failures != n {
			t.Errorf("after %d failures counter = %d", n, b.Failures)
		}
	}
	if b.Current() != 60*time.Second {
		t.Errorf("expected slowest interval, got %v", b.Current())
	}
}

func TestBackoffSuccessStepsBackOnce(t *testing.T) {
	b := NewBackoff(schedule)
	b.OnFailure()
	b.OnFailure()
	b.OnFailure()

	b.OnSuccess()
	if b.Index != 2 {
		t.Errorf("one success after escalation should step back one, index = %d", b.Index)
	}
	if b.Failures != 0 {
		t.Errorf("expected failure counter reset, got %d", b.Failures)
	}

	// Further successes without new failures leave the interval alone.
	b.OnSuccess()
	b.OnSuccess()
	if b.Index != 2 {
		t.Errorf("success without prior failures changed index to %d", b.Index)
	}
}

func TestBackoffSuccessFromAdjacent(t *testing.T) {
	b := NewBackoff(schedule)
	b.OnFailure()
	b.OnSuccess()
	if b.Index != 0 {
		t.Errorf("expected return to fastest from adjacent index, got %d", b.Index)
	}
}

func TestBackoffSuccessAtFastest(t *testing.T) {
	b := NewBackoff(schedule)
	b.OnSuccess()
	if b.Index != 0 || b.Failures != 0 {
		t.Errorf("unexpected state: %+v", b)
	}
}

func TestBackoffSingleInterval(t *testing.T) {
	b := NewBackoff([]time.Duration{time.Minute})
	b.OnFailure()
	b.OnFailure()
	if b.Index != 0 || b.Current() != time.Minute {
		t.Errorf("single interval schedule must stay put: %+v", b)
	}
	b.OnSuccess()
	if b.Index != 0 || b.Failures != 0 {
		t.Errorf("unexpected state: %+v", b)
	}
}

func TestBackoffCopiesIntervals(t *testing.T) {
	in := []time.Duration{time.Second, time.Minute}
	b := NewBackoff(in)
	in[0] = time.Hour
	if b.Current() != time.Second {
		t.Error("backoff should not alias the caller's slice")
	}
}

func TestBackoffEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty schedule")
		}
	}()
	NewBackoff(nil)
}

func TestBackoffString(t *testing.T) {
	b := NewBackoff([]time.Duration{time.Second, 5 * time.Second, time.Minute})
	if got := b.String(); got != "1s → 5s → 1m0s" {
		t.Errorf("String() = %q", got)
	}
}
