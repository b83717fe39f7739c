//go:build xmem_opt_cachelinesize_64

package xmem

// CacheLineSize forced to 64 bytes.
const CacheLineSize uintptr = 64
