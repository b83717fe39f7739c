package xmem

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Alignment is a compile-time alignment parameter. Implementations are
// zero-size marker types whose Bytes method returns a power of two.
type Alignment interface {
	Bytes() uintptr
}

type (
	// Natural requests no alignment beyond the element's own.
	Natural struct{}
	// Align8 requests 8-byte alignment.
	Align8 struct{}
	// Align16 requests 16-byte alignment (SSE).
	Align16 struct{}
	// Align32 requests 32-byte alignment (AVX2).
	Align32 struct{}
	// Align64 requests 64-byte alignment (AVX-512).
	Align64 struct{}
	// Align128 requests 128-byte alignment.
	Align128 struct{}
	// Align256 requests 256-byte alignment.
	Align256 struct{}
	// Align4096 requests page alignment.
	Align4096 struct{}
	// CacheLine requests CacheLineSize alignment.
	CacheLine struct{}
)

func (Natural) Bytes() uintptr   { return 1 }
func (Align8) Bytes() uintptr    { return 8 }
func (Align16) Bytes() uintptr   { return 16 }
func (Align32) Bytes() uintptr   { return 32 }
func (Align64) Bytes() uintptr   { return 64 }
func (Align128) Bytes() uintptr  { return 128 }
func (Align256) Bytes() uintptr  { return 256 }
func (Align4096) Bytes() uintptr { return 4096 }
func (CacheLine) Bytes() uintptr { return CacheLineSize }

// AllocatorInfo is the alignment view shared by every AlignedAllocator
// instantiation, used to compare allocators of different element types.
type AllocatorInfo interface {
	RequestedAlignment() uintptr
	Alignment() uintptr
}

// AlignedAllocator allocates element storage aligned to A. It carries no
// state: every value of the same instantiation is interchangeable, and
// storage obtained from one may be released through another.
//
// The final alignment may be larger than requested but is always a
// multiple of it. That happens when the element type itself requires more
// than A, as reported by unsafe.Alignof or OverAligned.
//
//	var a xmem.AlignedAllocator[float64, xmem.Align64]
//	buf, err := a.Allocate(1024)
//	if err != nil {
//		return err
//	}
//	defer a.Deallocate(buf, 1024)
type AlignedAllocator[T any, A Alignment] struct{}

// RequestedAlignment returns A in bytes.
func (AlignedAllocator[T, A]) RequestedAlignment() uintptr {
	var a A
	return a.Bytes()
}

// Alignment returns the alignment every allocation actually gets:
// alignof(T) rounded up to a multiple of A.
func (al AlignedAllocator[T, A]) Alignment() uintptr {
	req := al.RequestedAlignment()
	return ((alignOf[T]()-1)/req + 1) * req
}

// MaxSize returns the theoretical maximum element count of one allocation.
func (AlignedAllocator[T, A]) MaxSize() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// Allocate returns zeroed storage for n elements with len and cap equal
// to n. It fails with an error wrapping ErrBadAlloc instead of returning
// nil storage.
func (al AlignedAllocator[T, A]) Allocate(n int) ([]T, error) {
	if n > al.MaxSize() {
		return nil, errors.Wrapf(ErrBadAlloc, "%d elements exceed max size %d", n, al.MaxSize())
	}
	s, _, err := allocBacking[T](n, al.Alignment())
	if err != nil {
		return nil, err
	}
	Assert(IsAlignedSlice(s, al.Alignment()), "IsAlignedSlice(s, Alignment())")
	return s, nil
}

// Deallocate releases storage returned by Allocate for n elements.
// Elements are cleared so the collector can reclaim what they reference.
func (al AlignedAllocator[T, A]) Deallocate(p []T, n int) {
	Assert(len(p) == n, "len(p) == n")
	al.Free(p)
}

// Free releases storage returned by Allocate without a size check.
func (AlignedAllocator[T, A]) Free(p []T) {
	clear(p[:cap(p)])
}

// Equal reports whether storage from al may be released through other.
// Allocators compare equal exactly when their requested alignments match.
func (al AlignedAllocator[T, A]) Equal(other AllocatorInfo) bool {
	return other != nil && al.RequestedAlignment() == other.RequestedAlignment()
}

// Rebind returns the allocator for another element type with the same
// alignment parameter.
func Rebind[U, T any, A Alignment](AlignedAllocator[T, A]) AlignedAllocator[U, A] {
	return AlignedAllocator[U, A]{}
}
