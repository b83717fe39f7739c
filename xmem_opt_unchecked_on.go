//go:build xmem_opt_unchecked

package xmem

// checked is false: Assert bodies are removed by constant folding and
// contract violations are undefined behavior.
const checked = false
