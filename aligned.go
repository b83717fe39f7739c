package xmem

import (
	"unsafe"
)

// IsAligned reports whether p is aligned to align bytes. The address is
// taken through unsafe.Pointer, the only conversion to uintptr that the
// language guarantees to be meaningful. A nil pointer is aligned to any
// boundary. An alignment of zero is never satisfied.
func IsAligned[T any](p *T, align uintptr) bool {
	return IsAlignedPointer(unsafe.Pointer(p), align)
}

// IsAlignedPointer is IsAligned for untyped pointers.
func IsAlignedPointer(p unsafe.Pointer, align uintptr) bool {
	if align == 0 {
		return false
	}
	return uintptr(p)%align == 0
}

// IsAlignedSlice reports whether the first element of s is aligned to
// align bytes.
func IsAlignedSlice[T any](s []T, align uintptr) bool {
	return IsAlignedPointer(unsafe.Pointer(unsafe.SliceData(s)), align)
}

// AssumeAligned declares that p is aligned to A and returns it unchanged.
// The declaration is verified in checked builds only; it never moves p to
// an aligned address.
//
//	v := xmem.AssumeAligned[xmem.Align64](p)
func AssumeAligned[A Alignment, T any](p *T) *T {
	var a A
	Assert(IsAligned(p, a.Bytes()), "IsAligned(p, A)")
	return p
}

// AssumeAlignedSlice is AssumeAligned for the first element of s.
func AssumeAlignedSlice[A Alignment, T any](s []T) []T {
	var a A
	Assert(IsAlignedSlice(s, a.Bytes()), "IsAlignedSlice(s, A)")
	return s
}

// Align returns the first size-byte window of buf that starts on an
// alignment boundary, or nil if buf is too small to hold one.
func Align(alignment, size uintptr, buf []byte) []byte {
	Assert(alignment > 0, "alignment > 0")
	Assert(isPow2(alignment), "isPow2(alignment)")

	space := uintptr(len(buf))
	if size > space {
		return nil
	}
	off := alignOffset(uintptr(unsafe.Pointer(unsafe.SliceData(buf))), alignment)
	if off > space-size {
		return nil
	}
	return buf[off : off+size : off+size]
}

// AlignedBytes returns a zeroed byte slice of length size whose first byte
// is aligned to alignment. The memory is managed by the garbage collector
// and needs no AlignedFree.
func AlignedBytes(alignment, size int) []byte {
	Assert(alignment > 0 && isPow2(uintptr(alignment)), "isPow2(alignment)")
	if size <= 0 {
		return nil
	}
	b, _, err := allocBacking[byte](size, uintptr(alignment))
	if err != nil {
		return nil
	}
	return b
}

// checkMallocAlignment verifies the AlignedMalloc alignment contract.
func checkMallocAlignment(alignment uintptr) {
	Assert(alignment > 0, "alignment > 0")
	Assert(isPow2(alignment), "isPow2(alignment)")
	Assert(alignment%unsafe.Sizeof(uintptr(0)) == 0, "alignment % sizeof(pointer) == 0")
}

// AlignedMalloc returns size bytes of zeroed storage starting at a
// multiple of alignment, or nil if the request cannot be represented.
// The alignment must be a power of two and a multiple of the pointer
// size. The storage belongs to the caller until it is passed to
// AlignedFree; it must not be released any other way.
func AlignedMalloc(alignment, size uintptr) unsafe.Pointer {
	checkMallocAlignment(alignment)
	if size > maxAllocBytes-alignment {
		return nil
	}
	b, keep, err := allocBacking[byte](int(max(size, 1)), alignment)
	if err != nil {
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	Assert(IsAlignedPointer(p, alignment), "IsAlignedPointer(p, alignment)")
	registry.insert(uintptr(p), alignedBlock{keep: keep, size: size})
	return p
}

// AlignedMallocOf returns storage for n contiguous values of T aligned to
// alignment, or nil on failure. Element types holding Go pointers are
// backed by typed memory so the collector keeps their referents alive.
// Release it with AlignedFreeOf.
func AlignedMallocOf[T any](alignment uintptr, n int) *T {
	checkMallocAlignment(alignment)
	if n < 0 {
		return nil
	}
	s, keep, err := allocBacking[T](max(n, 1), max(alignment, alignOf[T]()))
	if err != nil {
		return nil
	}
	p := unsafe.SliceData(s)
	var zero T
	registry.insert(uintptr(unsafe.Pointer(p)), alignedBlock{keep: keep, size: uintptr(n) * unsafe.Sizeof(zero)})
	return p
}

// AlignedFree releases storage obtained from AlignedMalloc. Passing nil
// is a no-op. Passing any other pointer, or freeing twice, violates the
// contract.
func AlignedFree(p unsafe.Pointer) {
	if p == nil {
		return
	}
	_, ok := registry.remove(uintptr(p))
	Assert(ok, "p was returned by AlignedMalloc")
}

// AlignedFreeOf releases storage obtained from AlignedMallocOf.
func AlignedFreeOf[T any](p *T) {
	AlignedFree(unsafe.Pointer(p))
}
