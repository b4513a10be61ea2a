package shutdownqueue

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestAddNilTaskIsNoop(t *testing.T) {
	t.Parallel()

	q := New()
	q.Add("nil", nil)

	err := q.Shutdown(t.Context())
	if err != nil {
		t.Fatalf("expected nil after adding nil task; got %v", err)
	}
}

func TestLIFOOrder(t *testing.T) {
	t.Parallel()

	q := New()

	var order []int

	makeTask := func(n int) Task {
		return func(context.Context) error {
			order = append(order, n)
			return nil
		}
	}

	for i := 1; i <= 3; i++ {
		q.Add("task", makeTask(i))
	}

	err := q.Shutdown(t.Context())
	if err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("order len mismatch: got %v, want %v", order, want)
	}

	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, order, want)
		}
	}
}

func TestPanicRecoveredAndDrainContinues(t *testing.T) {
	t.Parallel()

	q := New()

	var ran atomic.Bool

	q.Add("after-panic", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	q.Add("panics", func(context.Context) error {
		panic("boom")
	})

	err := q.Shutdown(t.Context())
	if err == nil || !strings.Contains(err.Error(), `panic in shutdown task "panics"`) {
		t.Fatalf("expected panic error, got %v", err)
	}

	if !ran.Load() {
		t.Fatal("task registered before the panicking one did not run")
	}
}

func TestTaskErrorsAreJoinedAndDetectable(t *testing.T) {
	t.Parallel()

	q := New()

	errA := errors.New("a failed")
	errB := errors.New("b failed")

	q.Add("a", func(context.Context) error { return errA })
	q.Add("b", func(context.Context) error { return errB })

	err := q.Shutdown(t.Context())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
}

func TestEarlyCancelStopsDrain(t *testing.T) {
	t.Parallel()

	q := New()

	var calls atomic.Int32

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	q.Add("never", func(context.Context) error {
		calls.Add(1)
		return nil
	})
	q.Add("slow", func(c context.Context) error {
		calls.Add(1)
		<-c.Done()

		return nil
	})

	err := q.Shutdown(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected exactly one task to run, got %d", calls.Load())
	}
}

func TestShutdownIsIdempotentAndAddAfterCloseIgnored(t *testing.T) {
	t.Parallel()

	q := New()

	var calls atomic.Int32

	q.Add("once", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := q.Shutdown(t.Context()); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}

	q.Add("late", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := q.Shutdown(t.Context()); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
}
