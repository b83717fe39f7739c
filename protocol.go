package xmem

import (
	"reflect"
	"unsafe"
)

// Countable is the capability set Ptr requires from its pointee: an
// intrusive reference count. Embed Base or wrap a value in Derived to get
// an implementation, or implement the three methods directly.
//
// Code outside Release must never branch on UseCount; it exists for
// diagnostics and tests.
type Countable interface {
	// IncRef adds one reference.
	IncRef()
	// DecRef drops one reference and returns the new count.
	DecRef() uint32
	// UseCount returns the current number of references.
	UseCount() int
}

// Destroyer is implemented by counted objects that have work to do when
// their last reference is released: closing handles, returning aligned
// storage, releasing the Ptrs they hold.
type Destroyer interface {
	Destroy()
}

// AddRef increments the reference count of p.
func AddRef(p Countable) {
	Assert(!isNilCountable(p), "p != nil")
	p.IncRef()
}

// Release decrements the reference count of p and, when it reaches zero,
// runs the Destroy method of p's dynamic type.
func Release(p Countable) {
	Assert(!isNilCountable(p), "p != nil")
	if p.DecRef() == 0 {
		if d, ok := p.(Destroyer); ok {
			d.Destroy()
		}
	}
}

// CloneCounted returns a new object holding a copy of *src whose
// reference count is zero. Counts are never copied: the copy is a
// distinct object with its own ownership tracking.
//
// The counters of src are not read, so other goroutines may keep cloning
// and resetting handles to src while the copy runs. Writes to the other
// fields of src must still be synchronized by the caller. Countable
// implementations that keep their count outside Base and Derived are
// copied whole.
func CloneCounted[T any, P interface {
	*T
	Countable
}](src P) P {
	dst := P(new(T))
	copyData(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem())
	return dst
}

// AssignCounted copies the data of *src into *dst and keeps the
// reference count of dst. Neither counter is touched, so handle
// operations on either object may run concurrently. Other readers of
// dst's data fields must be synchronized with the assignment by the
// caller.
func AssignCounted[T any, P interface {
	*T
	Countable
}](dst, src P) {
	if dst == src {
		return
	}
	copyData(reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem())
}

var refCellType = reflect.TypeFor[refCell]()

// copyData copies src into dst field by field and skips every refCell,
// without reading it. Both values must be addressable.
func copyData(dst, src reflect.Value) {
	t := dst.Type()
	if t == refCellType {
		return
	}
	if !holdsRefCell(t) {
		writable(dst).Set(writable(src))
		return
	}
	for i := range t.NumField() {
		copyData(dst.Field(i), src.Field(i))
	}
}

// holdsRefCell reports whether t is a struct with a refCell among its
// fields, directly or through nested structs.
func holdsRefCell(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := range t.NumField() {
		f := t.Field(i).Type
		if f == refCellType || holdsRefCell(f) {
			return true
		}
	}
	return false
}

// writable returns v stripped of the read-only flag that unexported
// fields carry.
func writable(v reflect.Value) reflect.Value {
	return reflect.NewAt(v.Type(), v.Addr().UnsafePointer()).Elem()
}

// efaceWords is the layout of an empty interface.
type efaceWords struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// addressOf returns the address held by a pointer-shaped value boxed in
// an interface, 0 for nil and typed nil pointers.
func addressOf(v any) uintptr {
	return uintptr((*efaceWords)(unsafe.Pointer(&v)).data)
}

func isNilCountable(p Countable) bool {
	return p == nil || addressOf(p) == 0
}
