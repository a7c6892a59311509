package atomicx

import (
	"sync"
	"testing"
)

// TestCompareAndSwapPrev tests the observed-value contract of the
// CMPXCHG-shaped CAS.
func TestCompareAndSwapPrev(t *testing.T) {
	tests := []struct {
		name      string
		initial   uint32
		old       uint32
		new       uint32
		wantPrev  uint32
		wantFinal uint32
	}{
		{
			name:      "success swaps and returns expected",
			initial:   0,
			old:       0,
			new:       1,
			wantPrev:  0,
			wantFinal: 1,
		},
		{
			name:      "mismatch leaves word and returns observed",
			initial:   2,
			old:       0,
			new:       1,
			wantPrev:  2,
			wantFinal: 2,
		},
		{
			name:      "same old and new still reports success",
			initial:   1,
			old:       1,
			new:       1,
			wantPrev:  1,
			wantFinal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u Uint32
			u.Store(tt.initial)

			prev := u.CompareAndSwapPrev(tt.old, tt.new)
			if prev != tt.wantPrev {
				t.Errorf("CompareAndSwapPrev(%d, %d) = %d, want %d",
					tt.old, tt.new, prev, tt.wantPrev)
			}
			if got := u.Load(); got != tt.wantFinal {
				t.Errorf("word after CAS = %d, want %d", got, tt.wantFinal)
			}
		})
	}
}

// TestSwap tests the unconditional exchange.
func TestSwap(t *testing.T) {
	var u Uint32
	u.Store(1)

	if prev := u.Swap(2); prev != 1 {
		t.Errorf("Swap(2) = %d, want 1", prev)
	}
	if got := u.Load(); got != 2 {
		t.Errorf("word after Swap = %d, want 2", got)
	}
}

// TestCompareAndSwapPrevConcurrent hammers the word from many
// goroutines; exactly one CAS from each generation may succeed.
func TestCompareAndSwapPrevConcurrent(t *testing.T) {
	const goroutines = 16
	const rounds = 1000

	var u Uint32
	var wg sync.WaitGroup
	wins := make([]int, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				// Take the word 0->1, then put it back.
				if u.CompareAndSwapPrev(0, 1) == 0 {
					wins[id]++
					u.Store(0)
				}
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, w := range wins {
		total += w
	}
	if total == 0 {
		t.Fatal("no goroutine ever won the CAS")
	}
	if got := u.Load(); got != 0 {
		t.Errorf("word after all rounds = %d, want 0", got)
	}
}

// BenchmarkCompareAndSwapPrev measures the uncontended CAS cost, which
// bounds the mutex fast path.
func BenchmarkCompareAndSwapPrev(b *testing.B) {
	var u Uint32
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		u.CompareAndSwapPrev(0, 1)
		u.Store(0)
	}
}
