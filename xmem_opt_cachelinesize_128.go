//go:build xmem_opt_cachelinesize_128 && !xmem_opt_cachelinesize_64

package xmem

// CacheLineSize forced to 128 bytes (Apple M-series, POWER).
const CacheLineSize uintptr = 128
