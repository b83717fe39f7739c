//go:build !xmem_opt_unchecked

package xmem

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireAssertFails runs f and returns the assertion it must raise.
func requireAssertFails(t *testing.T, f func()) *AssertionError {
	t.Helper()
	prev := SetAssertOutput(io.Discard)
	defer SetAssertOutput(prev)

	var r any
	func() {
		defer func() { r = recover() }()
		f()
	}()
	require.NotNil(t, r, "expected a failed assertion")
	err, ok := r.(error)
	require.True(t, ok, "panic value %v is not an error", r)
	var ae *AssertionError
	require.True(t, errors.As(err, &ae), "panic value %v is not an *AssertionError", r)
	return ae
}

func TestChecked(t *testing.T) {
	require.True(t, Checked())
}

func TestAssert_Report(t *testing.T) {
	var buf bytes.Buffer
	prev := SetAssertOutput(&buf)
	defer SetAssertOutput(prev)

	var r any
	func() {
		defer func() { r = recover() }()
		Assert(len(buf.Bytes()) > 1, "len(buf) > 1")
	}()

	ae, ok := r.(*AssertionError)
	require.True(t, ok)
	require.Equal(t, "len(buf) > 1", ae.Expr)
	require.True(t, strings.HasSuffix(ae.File, "assert_checked_test.go"), ae.File)
	require.Contains(t, ae.Func, "TestAssert_Report")
	require.Positive(t, ae.Line)

	out := buf.String()
	require.Contains(t, out, "***** Failed Assertion *****")
	require.Contains(t, out, "Failed expression: len(buf) > 1")
	require.Contains(t, out, "File: "+ae.File)
	require.Contains(t, out, "Func: "+ae.Func)
}

func TestSetAssertOutput_Nil(t *testing.T) {
	prev := SetAssertOutput(nil)
	defer SetAssertOutput(prev)
	require.Equal(t, io.Discard, SetAssertOutput(nil))
}

func TestAssert_ContractViolations(t *testing.T) {
	ae := requireAssertFails(t, func() { AlignUp(10, 12) })
	require.Equal(t, "isPow2(alignment)", ae.Expr)

	requireAssertFails(t, func() { Align(3, 1, make([]byte, 8)) })
	requireAssertFails(t, func() { AlignedMalloc(24, 8) })
	requireAssertFails(t, func() { AlignedMalloc(0, 8) })
	requireAssertFails(t, func() { AlignedMalloc(2, 8) })

	b := AlignedBytes(64, 128)
	requireAssertFails(t, func() { AssumeAligned[Align64](&b[1]) })
	requireAssertFails(t, func() { AssumeAlignedSlice[Align64](b[8:]) })
}

func TestAlignedFree_ForeignPointer(t *testing.T) {
	before := AlignedStats()
	x := new(int64)
	requireAssertFails(t, func() { AlignedFreeOf(x) })

	p := AlignedMalloc(64, 32)
	AlignedFree(p)
	ae := requireAssertFails(t, func() { AlignedFree(p) })
	require.Equal(t, "p was returned by AlignedMalloc", ae.Expr)
	require.Equal(t, before, AlignedStats())

	requireAssertFails(t, func() { AlignedDelete[int64]{}.Delete(x) })
}

func TestAlignedAllocator_DeallocateSizeMismatch(t *testing.T) {
	var a AlignedAllocator[int, Align32]
	s, err := a.Allocate(4)
	require.NoError(t, err)
	requireAssertFails(t, func() { a.Deallocate(s, 5) })
	a.Deallocate(s, 4)
}

func TestVector_OutOfRange(t *testing.T) {
	v, err := NewVector[int, Align16](3, 1)
	require.NoError(t, err)
	defer v.Release()
	requireAssertFails(t, func() { v.At(3) })
	requireAssertFails(t, func() { v.Set(-1, 0) })
}

func TestRelease_BelowZero(t *testing.T) {
	ae := requireAssertFails(t, func() { Release(&Dog{}) })
	require.Equal(t, "reference count decremented below zero", ae.Expr)
}

func TestAddRef_Nil(t *testing.T) {
	requireAssertFails(t, func() { AddRef(nil) })
	requireAssertFails(t, func() { AddRef((*Dog)(nil)) })
	requireAssertFails(t, func() { Release((*Cat)(nil)) })
}

func TestPtr_DerefEmpty(t *testing.T) {
	var p Ptr[Animal]
	requireAssertFails(t, func() { p.Deref() })
}

func TestStaticCast_Unrelated(t *testing.T) {
	var destroyed countingDestroy
	c := NewPtr[Animal](newCat(&destroyed))
	defer c.Reset()

	requireAssertFails(t, func() { StaticCast[Barker](c) })
	require.Equal(t, 1, c.UseCount())

	requireAssertFails(t, func() { StaticCastMove[Barker](&c) })
	require.True(t, c.Valid())
	require.Equal(t, 1, c.UseCount())
}
