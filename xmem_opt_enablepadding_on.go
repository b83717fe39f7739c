//go:build xmem_opt_enablepadding

package xmem

import (
	"unsafe"

	"go.uber.org/atomic"
)

// enablePadding is true, the reference count `refCell` is surrounded by
// padding so that no cache line holding the counter holds any other
// field of the counted object, wherever the object starts. This
// mitigates false sharing between a hot counter and its neighbours when
// handles are copied and released from many goroutines.
// If turned on, every counted object grows by two cache lines.
// By default, it is turned off.
const enablePadding = true

// refCell holds an intrusive reference count.
type refCell struct {
	_ [CacheLineSize]byte
	n atomic.Uint32
	_ [CacheLineSize - unsafe.Sizeof(atomic.Uint32{})%CacheLineSize]byte
}
