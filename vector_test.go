package xmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVector_PushBackAligned(t *testing.T) {
	var v Vector[float64, Align64]
	defer v.Release()

	for i := range 1000 {
		require.NoError(t, v.PushBack(float64(i)))
		require.True(t, IsAlignedSlice(v.Data(), 64), "after %d pushes", i+1)
	}
	require.Equal(t, 1000, v.Len())
	require.GreaterOrEqual(t, v.Cap(), 1000)
	for i, x := range v.Data() {
		require.Equal(t, float64(i), x)
	}

	capBefore := v.Cap()
	v.Clear()
	require.Zero(t, v.Len())
	require.Empty(t, v.Data())
	require.Equal(t, capBefore, v.Cap())
}

func TestVector_OverAlignedElements(t *testing.T) {
	var v Vector[vec4, Align64]
	defer v.Release()
	require.Equal(t, uintptr(64), v.Allocator().Alignment())

	for i := range 1000 {
		f := float32(i)
		require.NoError(t, v.PushBack(vec4{f, f, f, f}))
	}
	require.Equal(t, 1000, v.Len())
	require.True(t, IsAlignedSlice(v.Data(), 64))
	require.Equal(t, vec4{999, 999, 999, 999}, v.At(999))

	v.Clear()
	require.Zero(t, v.Len())
}

func TestNewVector(t *testing.T) {
	v, err := NewVector[vec4, Natural](10, vec4{1, 2, 3, 4})
	require.NoError(t, err)
	defer v.Release()

	require.Equal(t, 10, v.Len())
	require.True(t, IsAlignedSlice(v.Data(), 16))
	for i := range v.Len() {
		require.Equal(t, vec4{1, 2, 3, 4}, v.At(i))
	}

	v.Set(3, vec4{})
	require.Equal(t, vec4{}, v.At(3))
	require.Equal(t, uintptr(16), v.Allocator().Alignment())
}

func TestVector_Resize(t *testing.T) {
	v, err := NewVector[int, Align32](4, 7)
	require.NoError(t, err)
	defer v.Release()

	require.NoError(t, v.Resize(2))
	require.Equal(t, []int{7, 7}, v.Data())

	require.NoError(t, v.Resize(5))
	require.Equal(t, []int{7, 7, 0, 0, 0}, v.Data())
	require.True(t, IsAlignedSlice(v.Data(), 32))
}

func TestVector_ResizeNegative(t *testing.T) {
	v, err := NewVector[int, Align16](3, 9)
	require.NoError(t, err)
	defer v.Release()

	require.ErrorIs(t, v.Resize(-1), ErrBadAlloc)
	require.Equal(t, 3, v.Len())
	require.Equal(t, []int{9, 9, 9}, v.Data())

	_, err = NewVector[int, Align16](-2, 0)
	require.ErrorIs(t, err, ErrBadAlloc)
}

func TestVector_ReserveAndShrink(t *testing.T) {
	var v Vector[string, CacheLine]
	require.NoError(t, v.Reserve(100))
	require.Equal(t, 100, v.Cap())
	require.Zero(t, v.Len())

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, v.PushBack(s))
	}
	require.NoError(t, v.Reserve(10))
	require.Equal(t, 100, v.Cap())

	require.NoError(t, v.ShrinkToFit())
	require.Equal(t, 3, v.Cap())
	require.Equal(t, []string{"a", "b", "c"}, v.Data())
	require.True(t, IsAlignedSlice(v.Data(), CacheLineSize))

	v.Clear()
	require.NoError(t, v.ShrinkToFit())
	require.Zero(t, v.Cap())

	v.Release()
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())
}

func TestVector_BadAlloc(t *testing.T) {
	var v Vector[[64]byte, Align64]
	err := v.Reserve(v.Allocator().MaxSize())
	require.ErrorIs(t, err, ErrBadAlloc)
	require.Zero(t, v.Cap())
}
