//go:build !xmem_opt_enablepadding

package xmem

import "go.uber.org/atomic"

// enablePadding is false: the reference count shares its cache line with
// the rest of the counted object.
const enablePadding = false

// refCell holds an intrusive reference count.
type refCell struct {
	n atomic.Uint32
}
