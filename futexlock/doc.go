// Package futexlock provides a user-space mutex built on the kernel's
// futex-style wait/wake facility.
//
// The mutex is a single 32-bit word cycling through three states:
// unlocked (0), locked (1), and locked-with-possible-sleepers (2). An
// uncontended acquire and release are pure user-space atomics — the
// kernel is entered only when a thread must actually sleep, and a
// release issues a wake syscall only when a sleeper might exist and no
// new acquirer showed up during a short spin window. The encoding and
// algorithm follow the scheme popularized by Drepper's "Futexes Are
// Tricky".
//
// # Quick Start
//
// The zero value is an unlocked mutex:
//
//	var mu futexlock.Mutex
//
//	mu.Lock()
//	// critical section
//	mu.Unlock()
//
// For pthread-shaped call sites, the full lifecycle is available:
//
//	var mu futexlock.Mutex
//	mu.Init(nil) // attributes are accepted and ignored
//	defer mu.Destroy()
//
// # What this lock is not
//
// There is no reentrancy, no owner check, no fairness, no timeout, and
// no cancellation. A goroutine that locks twice deadlocks itself; a
// waiter can be overtaken by newer acquirers indefinitely (mutual
// exclusion and liveness are guaranteed, FIFO ordering is not); Lock
// has no escape path until some thread calls Unlock. Unlock by a
// non-owner is a caller bug with undefined behavior, exactly as with a
// plain pthread mutex.
//
// Mutex satisfies [sync.Locker].
package futexlock
