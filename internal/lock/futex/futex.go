// Package futex is the gateway to the kernel's wait/wake facility.
//
// A Word is a 32-bit atomic value that threads can additionally block
// on: Wait parks the caller while the word still holds an expected
// value, and Wake releases a bounded number of parked callers. On Linux
// this maps directly onto the futex syscall; elsewhere a process-local
// waiter table emulates the same contract (see futex_portable.go).
//
// The contract callers may rely on, and the only one they may rely on:
//
//   - Wait(cmp) blocks only if the word equals cmp at enqueue time,
//     checked atomically by the kernel (or the emulation's bucket
//     lock). A stale cmp returns immediately. This closes the classic
//     check-then-block race.
//   - Wait may return spuriously at any time, without the word having
//     changed. Callers must re-examine the word in a loop.
//   - Wake(n) releases at most n waiters and is a no-op when nobody is
//     parked.
//
// No timeout form is provided; the lock built on top has no bounded
// acquire.
package futex

import (
	"sync/atomic"

	"github.com/posutsai/MemConsistency/internal/lock/atomicx"
)

// Word is an atomic 32-bit word that supports kernel-assisted waiting.
//
// The zero value is ready to use. A Word must not be copied after first
// use: parked waiters are keyed on its address.
type Word struct {
	atomicx.Uint32
}

// Instrumentation. The counters track gateway entries process-wide so
// tests can assert that a code path did or did not reach the kernel.
// They are monotonic; readers diff two snapshots.
var (
	waitCount atomic.Uint64
	wakeCount atomic.Uint64
)

// Wait blocks the calling thread while the word's value is cmp.
//
// Returns normally on wake-up, on a value mismatch detected at enqueue
// time, and on spurious kernel returns; the three cases are
// indistinguishable to the caller, which must recheck the word.
func (w *Word) Wait(cmp uint32) {
	waitCount.Add(1)
	futexWait(w.Addr(), cmp)
}

// Wake unparks at most n threads blocked on the word. Harmless no-op
// when no thread is parked.
func (w *Word) Wake(n uint32) {
	wakeCount.Add(1)
	futexWake(w.Addr(), n)
}

// Stats returns the process-wide number of Wait and Wake invocations
// since startup. Diagnostic only; the values are racy snapshots.
func Stats() (waits, wakes uint64) {
	return waitCount.Load(), wakeCount.Load()
}
