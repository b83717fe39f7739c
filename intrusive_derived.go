package xmem

// Derived adds an intrusive reference count to a value of a type that
// cannot carry one itself, e.g. a type from another package. B is often
// an interface type, so the wrapped value keeps its dynamic dispatch:
//
//	type Animal interface{ Name() string }
//
//	a := xmem.NewPtr(xmem.NewDerived[Animal](&Dog{}))
//	defer a.Reset()
//	a.Deref().Value.Name() // "Dog"
//
// When the last reference is released, Destroy runs the wrapped value's
// Destroy method (if it has one) and drops the value.
type Derived[B any] struct {
	Value B
	refs  refCell
}

// NewDerived wraps v with a zero reference count.
func NewDerived[B any](v B) *Derived[B] {
	return &Derived[B]{Value: v}
}

// IncRef adds one reference.
func (d *Derived[B]) IncRef() {
	d.refs.inc()
}

// DecRef drops one reference and returns the new count.
func (d *Derived[B]) DecRef() uint32 {
	return d.refs.dec()
}

// UseCount returns the current number of references.
func (d *Derived[B]) UseCount() int {
	return int(d.refs.load())
}

// Destroy destroys the wrapped value.
func (d *Derived[B]) Destroy() {
	if x, ok := any(d.Value).(Destroyer); ok {
		x.Destroy()
	}
	var zero B
	d.Value = zero
}

// Clone returns a new wrapper holding a copy of the value with a zero
// reference count.
func (d *Derived[B]) Clone() *Derived[B] {
	return NewDerived(d.Value)
}
