package xmem

import "math"

// inc adds one reference and returns the new count.
func (c *refCell) inc() uint32 {
	n := c.n.Inc()
	Assert(n != 0, "reference count overflow")
	return n
}

// dec drops one reference and returns the new count. Exactly one caller
// observes zero, after every earlier inc and dec on the same cell.
func (c *refCell) dec() uint32 {
	n := c.n.Dec()
	Assert(n != math.MaxUint32, "reference count decremented below zero")
	return n
}

func (c *refCell) load() uint32 {
	return c.n.Load()
}
