package xmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssert_TrueIsSilent(t *testing.T) {
	require.NotPanics(t, func() {
		Assert(true, "true")
		Assert(1+1 == 2, "1+1 == 2")
	})
}

func TestAssertionError_Error(t *testing.T) {
	e := &AssertionError{Expr: "p != nil", File: "x.go", Func: "pkg.f", Line: 7}
	require.Equal(t, `xmem: failed assertion "p != nil" at x.go:7 (pkg.f)`, e.Error())
}
