//go:build !xmem_opt_unchecked

package xmem

// checked enables every documented precondition check. Violations are
// reported through Assert and terminate the program unless recovered.
// Build with -tags xmem_opt_unchecked to compile the checks away.
const checked = true
