//go:build linux

package futex

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Futex operation codes. Only the two plain operations are used; the
// mutex does not need FUTEX_PRIVATE_FLAG, requeueing, or bitset waits.
const (
	opWait = 0 // FUTEX_WAIT
	opWake = 1 // FUTEX_WAKE
)

// futexWait issues FUTEX_WAIT against addr with the expected value cmp.
//
// The error is deliberately dropped. EAGAIN means the word no longer
// held cmp at enqueue time and EINTR means a signal interrupted the
// sleep; both are normal outcomes the caller's retry loop absorbs, and
// no other errno is reachable for a live, aligned word.
func futexWait(addr *uint32, cmp uint32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		opWait,
		uintptr(cmp),
		0, 0, 0)
}

// futexWake issues FUTEX_WAKE against addr, waking at most n waiters.
func futexWake(addr *uint32, n uint32) {
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		opWake,
		uintptr(n),
		0, 0, 0)
}
