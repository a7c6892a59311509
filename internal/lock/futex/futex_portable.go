//go:build !linux

package futex

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// Portable wait/wake emulation for platforms without a usable futex
// syscall. Parked waiters live in a process-local table of buckets
// keyed by word address; the bucket lock plays the role of the kernel's
// internal hash-bucket lock, making the value check at enqueue time
// atomic with respect to concurrent wakes.

// waiter parks one thread. The channel has capacity 1 so a wake that
// lands between enqueue and the blocking receive is remembered rather
// than lost.
type waiter struct {
	wake chan struct{}
}

type bucket struct {
	mu sync.Mutex
	// q holds parked waiters per word address in arrival order. The
	// kernel makes no ordering promise, so neither does the lock built
	// on top, but FIFO inside the emulation keeps tests deterministic.
	q map[*uint32][]*waiter
}

const numBuckets = 64

var table [numBuckets]bucket

func bucketFor(addr *uint32) *bucket {
	// Fibonacci hashing on the address; words are 4-byte aligned so the
	// low two bits carry nothing.
	h := (uintptr(unsafe.Pointer(addr)) >> 2) * 0x9E3779B9
	return &table[h%numBuckets]
}

func futexWait(addr *uint32, cmp uint32) {
	b := bucketFor(addr)

	b.mu.Lock()
	if atomic.LoadUint32(addr) != cmp {
		// Mismatch at enqueue time: return immediately, as FUTEX_WAIT
		// does with EAGAIN.
		b.mu.Unlock()
		return
	}
	w := &waiter{wake: make(chan struct{}, 1)}
	if b.q == nil {
		b.q = make(map[*uint32][]*waiter)
	}
	b.q[addr] = append(b.q[addr], w)
	b.mu.Unlock()

	<-w.wake
}

func futexWake(addr *uint32, n uint32) {
	b := bucketFor(addr)

	b.mu.Lock()
	q := b.q[addr]
	var woken []*waiter
	for n > 0 && len(q) > 0 {
		woken = append(woken, q[0])
		q = q[1:]
		n--
	}
	if len(q) == 0 {
		delete(b.q, addr)
	} else {
		b.q[addr] = q
	}
	b.mu.Unlock()

	for _, w := range woken {
		w.wake <- struct{}{}
	}
}
