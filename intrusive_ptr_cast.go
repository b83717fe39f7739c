package xmem

// Casts between handles of related types. The Copy forms (Convert,
// StaticCast, ConstCast, DynamicCast) leave the source untouched and add
// one reference when the result is non-empty. The Move forms transfer the
// source's reference to the result and empty the source; the count does
// not change.
//
// Type relationships are checked at run time through the object's
// dynamic type: Convert and StaticCast assert that the object converts to
// U, while DynamicCast yields an empty handle when it does not.

// Convert returns a new handle to p's object viewed as U. Use it for the
// implicit widenings a hierarchy allows, e.g. Ptr[*Dog] to Ptr[Animal].
func Convert[U, T Countable](p Ptr[T]) Ptr[U] {
	return StaticCast[U](p)
}

// ConvertMove is the move form of Convert.
func ConvertMove[U, T Countable](p *Ptr[T]) Ptr[U] {
	return StaticCastMove[U](p)
}

// StaticCast returns a new handle to p's object as U. The object must
// convert to U.
func StaticCast[U, T Countable](p Ptr[T]) Ptr[U] {
	if p.addr == 0 {
		return Ptr[U]{}
	}
	u, ok := any(p.obj).(U)
	Assert(ok, "static cast to an unrelated type")
	return NewPtr(u)
}

// StaticCastMove is the move form of StaticCast.
func StaticCastMove[U, T Countable](p *Ptr[T]) Ptr[U] {
	if p.addr == 0 {
		return Ptr[U]{}
	}
	u, ok := any(p.obj).(U)
	Assert(ok, "static cast to an unrelated type")
	if !ok {
		return Ptr[U]{}
	}
	p.Detach()
	return AdoptPtr(u)
}

// ConstCast returns a new handle to p's object as U. Go has no const
// qualifier, so it behaves exactly like StaticCast.
func ConstCast[U, T Countable](p Ptr[T]) Ptr[U] {
	return StaticCast[U](p)
}

// ConstCastMove is the move form of ConstCast.
func ConstCastMove[U, T Countable](p *Ptr[T]) Ptr[U] {
	return StaticCastMove[U](p)
}

// DynamicCast returns a new handle to p's object as U, or an empty handle
// when the object's dynamic type does not convert to U.
func DynamicCast[U, T Countable](p Ptr[T]) Ptr[U] {
	if p.addr == 0 {
		return Ptr[U]{}
	}
	u, ok := any(p.obj).(U)
	if !ok {
		return Ptr[U]{}
	}
	return NewPtr(u)
}

// DynamicCastMove is the move form of DynamicCast. When the conversion
// fails the result is empty and p keeps its reference.
func DynamicCastMove[U, T Countable](p *Ptr[T]) Ptr[U] {
	if p.addr == 0 {
		return Ptr[U]{}
	}
	u, ok := any(p.obj).(U)
	if !ok {
		return Ptr[U]{}
	}
	p.Detach()
	return AdoptPtr(u)
}
