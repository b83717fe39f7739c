package xmem

// Ptr is a smart pointer that retains shared ownership of an object
// through its intrusive reference count. Several Ptrs may own the same
// object; it is destroyed when the last owning Ptr is reset, reassigned
// or moved onto another object.
//
// Unlike a control-block shared pointer, the count lives inside the
// object (see Base, Derived), so any raw pointer to a counted object can
// be turned back into an owning handle.
//
// Go copies a Ptr bitwise on assignment without touching the count, so a
// new reference is only ever created through NewPtr, Clone, Assign or a
// cast, and every owning Ptr must end with Reset (or be moved or
// detached):
//
//	a := xmem.NewPtr[Animal](&Dog{})
//	defer a.Reset()
//	b := a.Clone()
//	defer b.Reset()
//	a.UseCount() // 2
//
// The zero Ptr is empty: it holds no object, is never dereferenced and
// reports a UseCount of 0.
type Ptr[T Countable] struct {
	obj  T
	addr uintptr
}

// NewPtr returns a handle to p, adding one reference when p is not nil.
func NewPtr[T Countable](p T) Ptr[T] {
	return NewPtrWith(p, true)
}

// AdoptPtr returns a handle to p without adding a reference, taking over
// one the caller already holds (e.g. a pointer returned by Detach).
func AdoptPtr[T Countable](p T) Ptr[T] {
	return NewPtrWith(p, false)
}

// NewPtrWith returns a handle to p and adds a reference when addRef is
// true. A nil p, including a typed nil pointer, yields the empty handle.
func NewPtrWith[T Countable](p T, addRef bool) Ptr[T] {
	addr := addressOf(p)
	if addr == 0 {
		return Ptr[T]{}
	}
	if addRef {
		AddRef(p)
	}
	return Ptr[T]{obj: p, addr: addr}
}

// Clone returns a new handle to the same object, adding one reference.
func (p Ptr[T]) Clone() Ptr[T] {
	if p.addr != 0 {
		AddRef(p.obj)
	}
	return p
}

// Assign makes p share o's object. The previous object is released after
// the new reference is taken, so assigning a handle to itself is safe.
func (p *Ptr[T]) Assign(o Ptr[T]) {
	c := o.Clone()
	p.Swap(&c)
	c.Reset()
}

// AssignRaw makes p a new owner of raw.
func (p *Ptr[T]) AssignRaw(raw T) {
	p.ResetWith(raw, true)
}

// Move transfers p's reference to the returned handle and empties p.
// The count does not change.
func (p *Ptr[T]) Move() Ptr[T] {
	m := *p
	*p = Ptr[T]{}
	return m
}

// MoveFrom releases p's object and takes over o's reference, emptying o.
func (p *Ptr[T]) MoveFrom(o *Ptr[T]) {
	if p == o {
		return
	}
	m := o.Move()
	p.Swap(&m)
	m.Reset()
}

// Reset releases the object, if any, and empties p. It ends the
// lifetime of the handle.
func (p *Ptr[T]) Reset() {
	old := p.Move()
	if old.addr != 0 {
		Release(old.obj)
	}
}

// ResetTo releases the current object and becomes a new owner of raw.
func (p *Ptr[T]) ResetTo(raw T) {
	p.ResetWith(raw, true)
}

// ResetWith releases the current object and takes raw, adding a
// reference when addRef is true.
func (p *Ptr[T]) ResetWith(raw T, addRef bool) {
	n := NewPtrWith(raw, addRef)
	p.Swap(&n)
	n.Reset()
}

// Get returns the raw object without checks. It is the zero T when p is
// empty.
func (p Ptr[T]) Get() T {
	return p.obj
}

// Deref returns the object. p must not be empty.
func (p Ptr[T]) Deref() T {
	Assert(p.addr != 0, "p != nil")
	return p.obj
}

// Detach empties p without releasing its reference and returns the raw
// object. The caller becomes responsible for a matching Release (or
// AdoptPtr).
func (p *Ptr[T]) Detach() T {
	m := p.Move()
	return m.obj
}

// Swap exchanges the objects of p and o.
func (p *Ptr[T]) Swap(o *Ptr[T]) {
	*p, *o = *o, *p
}

// Valid reports whether p holds an object.
func (p Ptr[T]) Valid() bool {
	return p.addr != 0
}

// IsNil reports whether p is empty.
func (p Ptr[T]) IsNil() bool {
	return p.addr == 0
}

// UseCount returns the object's reference count, or 0 when p is empty.
func (p Ptr[T]) UseCount() int {
	if p.addr == 0 {
		return 0
	}
	return p.obj.UseCount()
}

// Addr returns the address of the object, 0 when p is empty.
func (p Ptr[T]) Addr() uintptr {
	return p.addr
}

// SwapPtr exchanges the objects of a and b.
func SwapPtr[T Countable](a, b *Ptr[T]) {
	a.Swap(b)
}

// GetPointer returns the raw object held by p.
func GetPointer[T Countable](p Ptr[T]) T {
	return p.Get()
}
