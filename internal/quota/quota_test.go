package quota

import (
	"sync"
	"testing"
)

func TestTryConsume_NeverExceedsCap(t *testing.T) {
	t.Parallel()

	a := New(3)
	consumed := 0
	for i := 0; i < 10; i++ {
		if a.TryConsume(1) {
			consumed++
		}
	}
	if consumed != 3 {
		t.Fatalf("expected 3 successful consumptions, got %d", consumed)
	}
	if a.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", a.Remaining())
	}
	if a.TryConsume(1) {
		t.Fatalf("consume must keep failing once quota is reached")
	}
}

func TestTryConsume_Concurrent(t *testing.T) {
	t.Parallel()

	const quotaCap = 50
	a := New(quotaCap)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		consumed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if a.TryConsume(1) {
				mu.Lock()
				consumed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if consumed != quotaCap {
		t.Fatalf("expected exactly %d consumptions, got %d", quotaCap, consumed)
	}
}

func TestRelease_RestoresCapacity(t *testing.T) {
	t.Parallel()

	a := New(2)
	if !a.TryConsume(1) || !a.TryConsume(1) {
		t.Fatalf("expected both consumptions to succeed")
	}
	a.Release(1)
	if a.Remaining() != 1 {
		t.Fatalf("expected 1 remaining after release, got %d", a.Remaining())
	}
	if !a.TryConsume(1) {
		t.Fatalf("expected released unit to be consumable")
	}
}

func TestRelease_ClampsToCap(t *testing.T) {
	t.Parallel()

	a := New(2)
	a.Release(5)
	if a.Remaining() != 2 {
		t.Fatalf("release must not grow capacity past the cap, got %d", a.Remaining())
	}
}

func TestNew_NegativeIsZero(t *testing.T) {
	t.Parallel()

	a := New(-1)
	if a.Remaining() != 0 {
		t.Fatalf("expected zero capacity, got %d", a.Remaining())
	}
	if a.TryConsume(1) {
		t.Fatalf("zero-capacity allocator must refuse consumption")
	}
}
