package xmem

import "github.com/pkg/errors"

// Vector is a growable sequence whose storage always comes from
// AlignedAllocator[T, A], so Data stays aligned across reallocations.
// A Vector must not be copied after first use.
type Vector[T any, A Alignment] struct {
	alloc AlignedAllocator[T, A]
	buf   []T // len(buf) == capacity
	n     int
}

// NewVector returns a vector holding n copies of v.
func NewVector[T any, A Alignment](n int, v T) (*Vector[T, A], error) {
	vec := &Vector[T, A]{}
	if err := vec.Resize(n); err != nil {
		return nil, err
	}
	for i := range vec.n {
		vec.buf[i] = v
	}
	return vec, nil
}

// Allocator returns the vector's allocator.
func (v *Vector[T, A]) Allocator() AlignedAllocator[T, A] {
	return v.alloc
}

// Len returns the number of elements.
func (v *Vector[T, A]) Len() int { return v.n }

// Cap returns the number of elements the current storage can hold.
func (v *Vector[T, A]) Cap() int { return len(v.buf) }

// Data returns the live elements. The slice aliases the vector's storage
// and is invalidated by any call that reallocates.
func (v *Vector[T, A]) Data() []T {
	return v.buf[:v.n:v.n]
}

// At returns element i.
func (v *Vector[T, A]) At(i int) T {
	Assert(i >= 0 && i < v.n, "0 <= i < Len()")
	return v.buf[i]
}

// Set replaces element i.
func (v *Vector[T, A]) Set(i int, x T) {
	Assert(i >= 0 && i < v.n, "0 <= i < Len()")
	v.buf[i] = x
}

// PushBack appends x, doubling the storage when full.
func (v *Vector[T, A]) PushBack(x T) error {
	if v.n == len(v.buf) {
		if err := v.Reserve(max(2*len(v.buf), 1)); err != nil {
			return err
		}
	}
	v.buf[v.n] = x
	v.n++
	return nil
}

// Reserve grows the storage to hold at least n elements.
func (v *Vector[T, A]) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.realloc(n)
}

// Resize sets the length to n. New elements are zero values. A negative
// n fails with an error wrapping ErrBadAlloc and leaves v unchanged.
func (v *Vector[T, A]) Resize(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrBadAlloc, "negative length %d", n)
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if n < v.n {
		clear(v.buf[n:v.n])
	}
	v.n = n
	return nil
}

// Clear removes every element and keeps the storage.
func (v *Vector[T, A]) Clear() {
	clear(v.buf[:v.n])
	v.n = 0
}

// ShrinkToFit reallocates the storage to exactly Len elements.
func (v *Vector[T, A]) ShrinkToFit() error {
	if v.n == len(v.buf) {
		return nil
	}
	if v.n == 0 {
		v.Release()
		return nil
	}
	return v.realloc(v.n)
}

// Release returns the storage to the allocator and empties the vector.
func (v *Vector[T, A]) Release() {
	if v.buf != nil {
		v.alloc.Deallocate(v.buf, len(v.buf))
	}
	v.buf, v.n = nil, 0
}

func (v *Vector[T, A]) realloc(n int) error {
	buf, err := v.alloc.Allocate(n)
	if err != nil {
		return err
	}
	copy(buf, v.buf[:v.n])
	if v.buf != nil {
		v.alloc.Deallocate(v.buf, len(v.buf))
	}
	v.buf = buf
	return nil
}
