package xmem

import (
	"math/bits"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrBadAlloc is returned when a storage request cannot be satisfied.
var ErrBadAlloc = errors.New("xmem: bad alloc")

const (
	// maxAllocBytes bounds a single backing allocation below the runtime's
	// own limit, so oversized requests fail with ErrBadAlloc instead of a
	// makeslice panic.
	maxAllocBytes = (1<<31-1)*(1-bits.UintSize/64) + (1<<47)*(bits.UintSize/64)

	// largeObjectBytes is the smallest allocation the runtime serves from
	// a dedicated span, which always starts on a page boundary.
	largeObjectBytes = 32<<10 + 1
)

// OverAligned is implemented by value types that need a stricter
// alignment than the one the compiler assigns them, e.g. SIMD lanes:
//
//	type vec4 struct{ x, y, z, w float32 }
//
//	func (vec4) AlignOf() uintptr { return 16 }
//
// AlignOf may have a value or a pointer receiver. It is called on a
// pointer to the zero value, so elements of type *vec4 keep pointer
// alignment.
type OverAligned interface {
	AlignOf() uintptr
}

// alignOf returns the effective alignment of T.
func alignOf[T any]() uintptr {
	var zero T
	a := unsafe.Alignof(zero)
	if o, ok := any(&zero).(OverAligned); ok {
		if n := o.AlignOf(); n > a {
			a = n
		}
	}
	return a
}

// hasPointers reports whether values of t hold references the garbage
// collector must see.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

func isPow2(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// alignOffset returns the distance from addr to the next multiple of align.
func alignOffset(addr, align uintptr) uintptr {
	return (align - addr&(align-1)) & (align - 1)
}

// AlignUp rounds n up to a multiple of the power-of-two alignment.
func AlignUp(n, alignment uintptr) uintptr {
	Assert(isPow2(alignment), "isPow2(alignment)")
	return (n + alignment - 1) &^ (alignment - 1)
}

// allocBacking returns n elements of T whose first element is aligned to
// align, together with the Go allocation that must stay reachable for as
// long as the elements are used.
//
// Pointer-free element types are carved out of an over-allocated byte
// buffer. Types holding pointers must live in memory typed as T so the
// collector scans them: the buffer is over-allocated in elements and the
// first aligned element is searched. Element addresses advance by
// sizeof(T), so the reachable residues modulo align repeat every
// align/g elements, g being the largest power of two dividing sizeof(T).
// When the span offset of a small object makes the alignment unreachable,
// the request is retried as a large (page-aligned) object.
func allocBacking[T any](n int, align uintptr) ([]T, any, error) {
	Assert(isPow2(align), "isPow2(align)")
	if n < 0 {
		return nil, nil, errors.Wrapf(ErrBadAlloc, "negative element count %d", n)
	}

	var zero T
	size := unsafe.Sizeof(zero)
	if size != 0 && uintptr(n) > (maxAllocBytes-align)/size {
		return nil, nil, errors.Wrapf(ErrBadAlloc, "%d elements of %d bytes exceed the maximum allocation", n, size)
	}

	if size == 0 || !hasPointers(reflect.TypeFor[T]()) {
		total := max(uintptr(n)*size, 1)
		raw := make([]byte, total+align-1)
		off := alignOffset(uintptr(unsafe.Pointer(unsafe.SliceData(raw))), align)
		p := unsafe.Pointer(&raw[off])
		return unsafe.Slice((*T)(p), n), raw, nil
	}

	g := min(uintptr(1)<<bits.TrailingZeros64(uint64(size)), align)
	period := int(align / g)
	for _, minCount := range [...]int{0, int(largeObjectBytes/size) + 1} {
		buf := make([]T, max(n+period, minCount))
		base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		for i := range period {
			if (base+uintptr(i)*size)&(align-1) == 0 {
				return buf[i : i+n : i+n], buf, nil
			}
		}
	}
	return nil, nil, errors.Wrapf(ErrBadAlloc, "alignment %d unreachable for %d-byte %T elements", align, size, zero)
}
