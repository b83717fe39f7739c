//go:build !xmem_opt_cachelinesize_64 && !xmem_opt_cachelinesize_128

package xmem

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used in structure padding to prevent false sharing
// and as the byte count of the CacheLine alignment.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
