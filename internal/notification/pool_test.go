package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_RunsQueuedTasksBeforeClose(t *testing.T) {
	var ran atomic.Int32
	p := NewPool(2, 8, nil)
	p.Run(context.Background())

	for i := 0; i < 5; i++ {
		if !p.TrySubmit(func(context.Context) error {
			ran.Add(1)
			return nil
		}) {
			t.Fatalf("expected submit %d to be accepted", i)
		}
	}
	p.Close()

	if got := ran.Load(); got != 5 {
		t.Fatalf("expected 5 tasks to run, got %d", got)
	}
}

func TestPool_TrySubmitDoesNotBlockWhenFull(t *testing.T) {
	p := NewPool(1, 1, nil)

	if !p.TrySubmit(func(context.Context) error { return nil }) {
		t.Fatalf("expected first submit to fit in the buffer")
	}
	if p.TrySubmit(func(context.Context) error { return nil }) {
		t.Fatalf("expected second submit to be rejected while no worker runs")
	}

	p.Run(context.Background())
	p.Close()
}

func TestPool_RejectsAfterClose(t *testing.T) {
	p := NewPool(1, 1, nil)
	p.Run(context.Background())
	p.Close()
	p.Close()

	if p.TrySubmit(func(context.Context) error { return nil }) {
		t.Fatalf("expected closed pool to reject tasks")
	}
}

func TestPool_ReportsTaskErrors(t *testing.T) {
	var (
		mu   sync.Mutex
		errs []error
	)
	boom := errors.New("boom")
	p := NewPool(1, 1, func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})
	p.Run(context.Background())
	p.TrySubmit(func(context.Context) error { return boom })
	p.Close()

	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Fatalf("expected boom to be reported, got %v", errs)
	}
}
