package xmem

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Handles compare by the address of the object they hold, so two handles
// are equal exactly when they share an object, and two empty handles are
// equal. Ptr values are also comparable with ==, which gives the same
// answer for handles of the same type.

// Equal reports whether p and o hold the same object.
func (p Ptr[T]) Equal(o Ptr[T]) bool {
	return p.addr == o.addr
}

// Is reports whether p holds raw. A nil raw matches the empty handle.
func (p Ptr[T]) Is(raw any) bool {
	return p.addr == addressOf(raw)
}

// Same reports whether a and b hold the same object, across handle
// types.
func Same[T, U Countable](a Ptr[T], b Ptr[U]) bool {
	return a.addr == b.addr
}

// Less orders handles by object address. The empty handle sorts first.
func Less[T Countable](a, b Ptr[T]) bool {
	return a.addr < b.addr
}

// Compare returns -1, 0 or +1 by object address, for slices.SortFunc and
// friends.
func Compare[T, U Countable](a Ptr[T], b Ptr[U]) int {
	return cmp.Compare(a.addr, b.addr)
}

// Hash returns a hash of the object address. Equal handles hash equally.
func (p Ptr[T]) Hash() uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(p.addr))
	return xxhash.Sum64(b[:])
}

// Hasher returns a hash function over handles of type T, for use as the
// hasher of address-keyed tables.
func Hasher[T Countable]() func(Ptr[T]) uint64 {
	return Ptr[T].Hash
}

// String formats the object address in hexadecimal, "0x0" for the empty
// handle.
func (p Ptr[T]) String() string {
	return fmt.Sprintf("%#x", p.addr)
}
