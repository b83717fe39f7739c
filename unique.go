package xmem

import "unsafe"

// Deleter releases an object exclusively owned by a UniquePtr.
type Deleter[T any] interface {
	Delete(p *T)
}

// AlignedDelete is the Deleter paired with AlignedMallocOf: it runs the
// object's destruction sequence, zeroes it and returns the storage with
// AlignedFree.
type AlignedDelete[T any] struct{}

// Delete destroys and frees p. A nil p is ignored.
func (AlignedDelete[T]) Delete(p *T) {
	if p == nil {
		return
	}
	Assert(registry.contains(uintptr(unsafe.Pointer(p))), "p was returned by AlignedMallocOf")
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
	AlignedFreeOf(p)
}

// UniquePtr exclusively owns an object and releases it through D when
// reset. Moving transfers ownership; a UniquePtr must not be copied.
type UniquePtr[T any, D Deleter[T]] struct {
	p *T
	d D
}

// NewUniquePtr takes ownership of p.
func NewUniquePtr[T any, D Deleter[T]](p *T) UniquePtr[T, D] {
	return UniquePtr[T, D]{p: p}
}

// NewAlignedUnique allocates one zero T aligned to alignment and returns
// its exclusive owner. The owner is empty when allocation fails.
func NewAlignedUnique[T any](alignment uintptr) UniquePtr[T, AlignedDelete[T]] {
	return NewUniquePtr[T, AlignedDelete[T]](AlignedMallocOf[T](alignment, 1))
}

// Get returns the owned pointer without giving up ownership.
func (u *UniquePtr[T, D]) Get() *T { return u.p }

// Valid reports whether an object is owned.
func (u *UniquePtr[T, D]) Valid() bool { return u.p != nil }

// Release gives up ownership and returns the pointer without deleting it.
func (u *UniquePtr[T, D]) Release() *T {
	p := u.p
	u.p = nil
	return p
}

// Reset deletes the owned object, if any.
func (u *UniquePtr[T, D]) Reset() {
	u.ResetTo(nil)
}

// ResetTo deletes the owned object and takes ownership of p.
func (u *UniquePtr[T, D]) ResetTo(p *T) {
	old := u.p
	u.p = p
	if old != nil && old != p {
		u.d.Delete(old)
	}
}

// Move transfers ownership to the returned UniquePtr.
func (u *UniquePtr[T, D]) Move() UniquePtr[T, D] {
	return UniquePtr[T, D]{p: u.Release(), d: u.d}
}
