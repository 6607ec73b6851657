package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Reversing twice must round-trip.
func TestArrayReverseInvolution(t *testing.T) {
	a := NewArray([]Value{Int(1), Int(2), Int(3)})
	got := a.Reverse().Reverse()
	require.Equal(t, a.Elements, got.Elements)
}

func TestArrayNegativeIndexAssign(t *testing.T) {
	a := NewArray([]Value{Int(1), Int(2), Int(3)})
	require.NoError(t, a.Set(-1, Int(99)))
	v, err := a.Get(2)
	require.NoError(t, err)
	require.Equal(t, Int(99), v)
}

func TestArrayPushPopOutOfRange(t *testing.T) {
	a := NewArray(nil)
	_, err := a.Pop()
	require.Error(t, err)
	a.Push(Int(1))
	v, err := a.Pop()
	require.NoError(t, err)
	require.Equal(t, Int(1), v)
}

// Dict.Set must return a new Dict and leave the receiver untouched.
func TestDictSetIsCopyOnWrite(t *testing.T) {
	d := NewDict()
	d.SetMut("a", Int(1))
	d2 := d.Set("a", Int(2))
	require.Equal(t, Int(1), d.Get("a"))
	require.Equal(t, Int(2), d2.Get("a"))
}

func TestDictMissingKeyReadsNil(t *testing.T) {
	d := NewDict()
	require.True(t, IsNil(d.Get("missing")))
}

func TestDictRemoveReturnsNewDict(t *testing.T) {
	d := NewDict().Set("a", Int(1)).Set("b", Int(2))
	d2 := d.Remove("a")
	require.True(t, d.Has("a"))
	require.False(t, d2.Has("a"))
	require.True(t, d2.Has("b"))
}

func TestSetAddContainsRemove(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(Int(1)))
	require.NoError(t, s.Add(Str("x")))
	require.True(t, s.Contains(Int(1)))
	require.False(t, s.Contains(Int(2)))
	s.Remove(Int(1))
	require.False(t, s.Contains(Int(1)))
	require.Equal(t, 1, s.Len())
}

func TestSetRejectsUnhashable(t *testing.T) {
	s := NewSet()
	err := s.Add(NewArray(nil))
	require.Error(t, err)
}
