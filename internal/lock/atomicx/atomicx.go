// Package atomicx provides the word-level atomic primitives the futex
// mutex is built on.
//
// The mutex state machine never touches its word through plain memory
// operations; every transition goes through Uint32, which wraps the
// sync/atomic sequentially-consistent operations. Go does not expose
// weaker orderings, so every operation here acts as a full barrier —
// exactly the strength the lock algorithm requires.
//
// CompareAndSwapPrev deserves a note: hardware CAS (x86 CMPXCHG, ARM
// LL/SC loops) reports the value observed before the attempt, and the
// lock algorithm branches on that observed value, not on a boolean.
// sync/atomic only offers the boolean form, so CompareAndSwapPrev
// reconstructs the hardware contract with a load+CAS loop.
package atomicx

import (
	"runtime"
	"sync/atomic"
)

// Uint32 is a 32-bit word mutated only through atomic operations.
//
// The zero value is ready to use. Uint32 must not be copied after first
// use. It is exactly four bytes with no padding, so embedding it as the
// first field of a larger struct preserves the natural alignment the
// kernel wait/wake facility requires.
type Uint32 struct {
	v uint32
}

// Load atomically reads the word.
//
//go:nosplit
func (u *Uint32) Load() uint32 {
	return atomic.LoadUint32(&u.v)
}

// Store atomically writes val to the word.
//
//go:nosplit
func (u *Uint32) Store(val uint32) {
	atomic.StoreUint32(&u.v, val)
}

// Swap atomically stores val and returns the previous value.
//
//go:nosplit
func (u *Uint32) Swap(val uint32) uint32 {
	return atomic.SwapUint32(&u.v, val)
}

// CompareAndSwap executes the compare-and-swap operation for the word
// and reports whether it swapped.
//
//go:nosplit
func (u *Uint32) CompareAndSwap(old, new uint32) bool {
	return atomic.CompareAndSwapUint32(&u.v, old, new)
}

// CompareAndSwapPrev executes the compare-and-swap operation and returns
// the value observed before the attempt: old on success, the conflicting
// value on failure.
//
// This is the CMPXCHG-shaped CAS the lock algorithm is written against.
// The load/CAS loop only repeats when another thread stores old between
// the load and the CAS; each retry observes a fresh value, so the loop
// is lock-free.
//
//go:nosplit
func (u *Uint32) CompareAndSwapPrev(old, new uint32) uint32 {
	for {
		prev := atomic.LoadUint32(&u.v)
		if prev != old {
			return prev
		}
		if atomic.CompareAndSwapUint32(&u.v, old, new) {
			return old
		}
	}
}

// Addr returns the address of the underlying word for handing to the
// kernel wait/wake syscall. The pointer must not be used for plain
// (non-atomic) access.
func (u *Uint32) Addr() *uint32 {
	return &u.v
}

// SpinHint is the busy-wait hint used inside bounded spin windows.
//
// User-space Go has no portable PAUSE instruction, so the conventional
// rendition is to yield the processor to another runnable goroutine.
// This keeps a spinning goroutine from starving the thread that will
// eventually release the lock, which on the Go scheduler matters more
// than the power/pipeline effects PAUSE addresses.
func SpinHint() {
	runtime.Gosched()
}
