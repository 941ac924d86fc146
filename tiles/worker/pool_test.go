package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSingleWorkerRunsInOrder(t *testing.T) {
	t.Parallel()

	p := NewPool(1)
	defer p.Shutdown()

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, p.Submit(Task{Work: func(context.Context) error {
			time.Sleep(time.Millisecond)
			mu.Lock()
			got = append(got, i)
			n := len(got)
			mu.Unlock()
			if n == 10 {
				close(done)
			}
			return nil
		}}))
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks did not finish")
	}
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestTaskTimeoutAndErrors(t *testing.T) {
	t.Parallel()

	errs := make(chan error, 1)
	p := NewPool(2,
		WithTimeout(20*time.Millisecond),
		WithErrorHandler(func(err error) { errs <- err }),
	)
	defer p.Shutdown()

	require.True(t, p.Submit(Task{Ctx: context.Background(), Work: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}))

	select {
	case err := <-errs:
		require.True(t, errors.Is(err, context.DeadlineExceeded))
	case <-time.After(5 * time.Second):
		t.Fatal("timeout was not applied")
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	t.Parallel()

	p := NewPool(1)
	p.Shutdown()
	p.Shutdown()
	require.False(t, p.Submit(Task{Work: func(context.Context) error { return nil }}))
}

func TestSubmitFullQueue(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	p := NewPool(1, WithQueueSize(1), WithTimeout(0))
	defer func() {
		close(release)
		p.Shutdown()
	}()

	block := Task{Work: func(context.Context) error {
		<-release
		return nil
	}}
	require.True(t, p.Submit(block))
	// Wait until the dispatcher has taken the first task off the queue
	// and is blocked on the second.
	require.Eventually(t, func() bool { return p.Submit(block) }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return len(p.tasks) == 0 }, time.Second, time.Millisecond)
	require.True(t, p.Submit(block))
	require.False(t, p.Submit(block))
}
