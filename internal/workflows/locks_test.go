package workflows

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	locks := NewKeyedMutex()

	var (
		active    int32
		maxActive int32
		wg        sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("25-97105")
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("Expected at most one holder at a time, got: %d", maxActive)
	}
	if locks.Len() != 0 {
		t.Errorf("Expected lock entries to be released, got: %d", locks.Len())
	}
}

func TestKeyedMutexDifferentKeysDoNotBlock(t *testing.T) {
	locks := NewKeyedMutex()
	unlockA := locks.Lock("25-97105")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("24-04401")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a different key to be lockable while another is held")
	}
}

func TestKeyedMutexUnlockIsIdempotent(t *testing.T) {
	locks := NewKeyedMutex()
	unlock := locks.Lock("25-97105")
	unlock()
	unlock()

	if locks.Len() != 0 {
		t.Errorf("Expected no entries, got: %d", locks.Len())
	}
}

func TestConcurrentStatusChangesSerialize(t *testing.T) {
	env := newTestEnv(t)
	env.addProject(t, "25-97105", "Hotel", lifecycle.StatusRFP, lifecycle.RootRFPs)
	ctx := context.Background()

	// Both previews see RFP; only the first apply may succeed.
	first, err := env.coord.PreviewStatusChange(ctx, "25-97105", lifecycle.StatusAwarded)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	second, err := env.coord.PreviewStatusChange(ctx, "25-97105", lifecycle.StatusLost)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, preview := range []*Preview{first, second} {
		wg.Add(1)
		go func(i int, preview *Preview) {
			defer wg.Done()
			_, errs[i] = env.coord.ApplyStatusChange(ctx, preview, ApplyOptions{})
		}(i, preview)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, perrors.ErrPreviewStale):
			t.Errorf("Expected ErrPreviewStale for the loser, got: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("Expected exactly one apply to succeed, got: %d (%v)", succeeded, errs)
	}

	p := env.project(t, "25-97105")
	loc, err := env.coord.LocateProjectFolder(ctx, "25-97105")
	if err != nil {
		t.Fatalf("Expected a single folder, got: %v", err)
	}
	want, _ := lifecycle.RootFor(p.Status)
	if loc.Root != want {
		t.Errorf("Expected folder under %s for status %s, got: %s", want, p.Status, loc.Root)
	}
}
