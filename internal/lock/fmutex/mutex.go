// Package fmutex implements the three-state futex mutex.
//
// The whole mutex is one 32-bit word holding one of three values:
//
//	0  Unlocked   no owner
//	1  Locked     one owner, nobody known to be sleeping in the kernel
//	2  Contended  one owner, somebody MAY be sleeping in the kernel
//
// The distinction between 1 and 2 is the entire trick: it lets Unlock
// skip the wake syscall in the common case where nobody ever blocked.
// Contended is conservative information, not ground truth — once a
// thread announces contention the word stays pessimistic until an
// Unlock drains it, because no thread can cheaply prove the sleeper
// count reached zero.
//
// Both the acquire and release paths spin for a bounded window before
// touching the kernel, trading a few hundred CAS attempts for a syscall
// under short critical sections. The windows are bounded constants, so
// neither path can busy-wait forever.
package fmutex

import (
	"github.com/posutsai/MemConsistency/internal/lock/atomicx"
	"github.com/posutsai/MemConsistency/internal/lock/futex"
)

// Mutex states. The values are part of the algorithm, not arbitrary
// enum tags: the acquire loop exchanges Contended in blindly and the
// release path compares against all three.
const (
	Unlocked  = 0 // no owner
	Locked    = 1 // owned, uncontended
	Contended = 2 // owned, possible sleepers
)

const (
	// lockSpin is the fast-path CAS budget before a thread announces
	// contention and sleeps.
	lockSpin = 100

	// unlockSpin is the release-path budget for a new acquirer to show
	// up and take over wake responsibility before we pay for the
	// syscall. Release spins longer than acquire so the two windows
	// overlap under bursty hand-offs.
	unlockSpin = 200
)

// Mutex is a user-space mutual exclusion lock backed by one futex word.
//
// The zero value is an unlocked mutex. A Mutex must not be copied after
// first use: sleeping threads are keyed on the word's address.
//
// Mutex is deliberately bare. No reentrancy, no owner tracking, no
// fairness: a thread that acquires twice deadlocks itself, and a waiter
// can be overtaken by fresh acquirers indefinitely. Callers that need
// those guarantees need a different lock.
type Mutex struct {
	word futex.Word
}

// Init resets the mutex to Unlocked. Calling Init on a mutex that other
// threads are using is a caller bug with undefined results.
func (m *Mutex) Init() {
	m.word.Store(Unlocked)
}

// Destroy releases nothing because the mutex owns nothing: the word's
// storage belongs to the caller and the kernel keeps no per-futex
// object. It exists so lifecycle-shaped call sites have something to
// call; Init after Destroy behaves like a fresh Init.
func (m *Mutex) Destroy() {}

// TryLock attempts the uncontended acquire once and reports whether the
// mutex was obtained. It never spins and never blocks.
func (m *Mutex) TryLock() bool {
	return m.word.CompareAndSwap(Unlocked, Locked)
}

// Lock acquires the mutex, blocking until it is held.
//
// Fast path: up to lockSpin attempts at the 0->1 transition. Each CAS
// returns the value it observed, and the last observation decides what
// the slow path does, so the result is threaded through rather than
// re-read.
func (m *Mutex) Lock() {
	prev := uint32(Contended)
	for i := 0; i < lockSpin; i++ {
		prev = m.word.CompareAndSwapPrev(Unlocked, Locked)
		if prev == Unlocked {
			return
		}
		atomicx.SpinHint()
	}
	m.lockSlow(prev)
}

// lockSlow is the announce-and-sleep path. prev is the last value the
// fast path observed.
//
// If the word was last seen Locked, exchange Contended in so the owner
// learns it must wake someone on release. The exchange doubles as an
// acquire attempt: a 0 observed at any exchange means the lock was free
// at that instant and is now ours.
//
// On the way out the word is left at Contended, not Locked. This thread
// cannot prove it was the only sleeper, so it must leave the
// pessimistic value behind; the cost is at worst one spare wake at the
// next release.
func (m *Mutex) lockSlow(prev uint32) {
	if prev == Locked {
		prev = m.word.Swap(Contended)
	}
	for prev != Unlocked {
		// Sleep while the word is believed Contended. The kernel
		// rechecks the value at enqueue time, so a release that slipped
		// in between the exchange and the wait falls straight through.
		m.word.Wait(Contended)
		prev = m.word.Swap(Contended)
	}
}

// Unlock releases the mutex. It never blocks and completes in a bounded
// number of steps.
//
// The first read is an ordinary atomic load used as a relaxed check: if
// the word already shows Contended, this thread owns the lock and a
// plain store of 0 releases it — every racing acquirer goes through a
// full-barrier CAS or exchange and will observe the store. Otherwise an
// exchange drains the word, and a previous value of Locked proves
// nobody ever blocked, so the kernel is never consulted.
//
// Both Contended outcomes fall through to unlockSlow: someone may be
// asleep and responsibility for waking them is now ours.
func (m *Mutex) Unlock() {
	if m.word.Load() == Contended {
		m.word.Store(Unlocked)
	} else if m.word.Swap(Unlocked) == Locked {
		return
	}
	m.unlockSlow()
}

// unlockSlow decides between handing off in user space and paying for a
// wake syscall.
//
// For up to unlockSpin iterations, watch for a new acquirer. If the
// word went non-zero, somebody took the lock; try to flip 1->2 so the
// new owner inherits the duty to wake the sleepers we might be
// abandoning. Any non-zero observation from that CAS — either we
// flipped it or it was already Contended — means an owner exists who
// will run this same release path later, so the sleepers are covered
// and no syscall is needed.
//
// Only when the window closes with no acquirer in sight do we wake one
// sleeper. One, not all: each woken thread re-runs the acquire
// exchange, and waking the whole herd would just stampede the word.
func (m *Mutex) unlockSlow() {
	for i := 0; i < unlockSpin; i++ {
		if m.word.Load() != Unlocked {
			if m.word.CompareAndSwapPrev(Locked, Contended) != Unlocked {
				return
			}
		}
		atomicx.SpinHint()
	}
	m.word.Wake(1)
}

// State returns the current raw word value. Diagnostic only: by the
// time the caller looks at it, the value may already be stale.
func (m *Mutex) State() uint32 {
	return m.word.Load()
}
