package xmem

// Base adds an intrusive reference count to the common type of a
// hierarchy. Every type embedding it, directly or through another
// embedded type, satisfies Countable, so handles of any member of the
// hierarchy can be managed by Ptr without per-type code:
//
//	type Animal interface {
//		xmem.Countable
//		Name() string
//	}
//
//	type animal struct {
//		xmem.Base
//		age int
//	}
//
//	type Dog struct{ animal }
//
//	func (*Dog) Name() string { return "Dog" }
//
//	p := xmem.NewPtr[Animal](&Dog{})
//	defer p.Reset()
//
// The count is zero when the object is created. Copies made with
// CloneCounted start from zero again; AssignCounted leaves the
// destination's count alone. A plain struct copy duplicates the count and
// must not be used on counted objects.
type Base struct {
	refs refCell
}

// IncRef adds one reference.
func (b *Base) IncRef() {
	b.refs.inc()
}

// DecRef drops one reference and returns the new count.
func (b *Base) DecRef() uint32 {
	return b.refs.dec()
}

// UseCount returns the current number of references.
func (b *Base) UseCount() int {
	return int(b.refs.load())
}
