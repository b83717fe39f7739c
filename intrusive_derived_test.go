package xmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type Speaker interface {
	Speak() string
}

type parrot struct {
	word      string
	destroyed *int
}

func (p *parrot) Speak() string { return p.word }
func (p *parrot) Destroy()      { *p.destroyed++ }

type mute struct{}

func (mute) Speak() string { return "" }

func TestDerived_Lifetime(t *testing.T) {
	destroyed := 0
	d := NewDerived[Speaker](&parrot{word: "hello", destroyed: &destroyed})
	require.Zero(t, d.UseCount())

	p := NewPtr(d)
	require.Equal(t, "hello", p.Deref().Value.Speak())
	q := p.Clone()
	require.Equal(t, 2, d.UseCount())

	p.Reset()
	require.Zero(t, destroyed)
	require.NotNil(t, d.Value)

	q.Reset()
	require.Equal(t, 1, destroyed)
	require.Nil(t, d.Value)
}

func TestDerived_ValueWithoutDestroy(t *testing.T) {
	p := NewPtr(NewDerived[Speaker](mute{}))
	require.Equal(t, "", p.Deref().Value.Speak())
	raw := p.Get()
	p.Reset()
	require.Nil(t, raw.Value)

	n := NewPtr(NewDerived(42))
	require.Equal(t, 42, n.Deref().Value)
	n.Reset()
}

func TestDerived_Clone(t *testing.T) {
	destroyed := 0
	d := NewDerived[Speaker](&parrot{word: "hi", destroyed: &destroyed})
	p := NewPtr(d)
	defer p.Reset()

	c := d.Clone()
	require.Zero(t, c.UseCount())
	require.True(t, c.Value == d.Value)
	require.Equal(t, 1, d.UseCount())

	cc := CloneCounted(d)
	require.Zero(t, cc.UseCount())
	require.Equal(t, 1, d.UseCount())
}

func TestDerived_DynamicCast(t *testing.T) {
	p := NewPtr[Countable](NewDerived[Speaker](mute{}))
	defer p.Reset()

	d := DynamicCast[*Derived[Speaker]](p)
	require.True(t, d.Valid())
	require.Equal(t, 2, p.UseCount())
	d.Reset()

	require.True(t, DynamicCast[*Derived[int]](p).IsNil())
	require.Equal(t, 1, p.UseCount())
}
