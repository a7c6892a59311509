package futexlock

import "github.com/posutsai/MemConsistency/internal/lock/fmutex"

// Attr is the mutex attribute record accepted by Init.
//
// It exists for call-site compatibility with richer mutex APIs and is
// ignored entirely: recursive, priority-inheriting, and robust variants
// are not implemented. Passing nil is always valid.
type Attr struct{}

// Mutex is a mutual exclusion lock backed by one futex word.
//
// The zero value is an unlocked mutex; Init is only needed to model a
// pthread-style lifecycle or to reuse storage after Destroy. A Mutex
// must not be copied after first use.
type Mutex struct {
	m fmutex.Mutex
}

// Init initializes the mutex to the unlocked state. attr is accepted
// for call-site compatibility and ignored; see [Attr].
//
// The returned error is always nil: initialization of a word the
// caller already owns cannot fail. Re-initializing a mutex that other
// goroutines are concurrently using is a caller bug.
func (mu *Mutex) Init(attr *Attr) error {
	_ = attr
	mu.m.Init()
	return nil
}

// Destroy marks the end of the mutex's lifecycle. It releases nothing —
// the word's storage belongs to the caller and the kernel holds no
// per-futex object — and the returned error is always nil. A destroyed
// mutex may be reused after Init.
func (mu *Mutex) Destroy() error {
	mu.m.Destroy()
	return nil
}

// Lock acquires the mutex, blocking until it is held. There is no
// timeout and no cancellation.
func (mu *Mutex) Lock() {
	mu.m.Lock()
}

// TryLock attempts to acquire the mutex without blocking or spinning
// and reports whether it succeeded.
func (mu *Mutex) TryLock() bool {
	return mu.m.TryLock()
}

// Unlock releases the mutex. It never blocks. Unlocking a mutex the
// caller does not hold is a caller bug with undefined behavior.
func (mu *Mutex) Unlock() {
	mu.m.Unlock()
}
