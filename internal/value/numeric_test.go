package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestArithPromotion(t *testing.T) {
	v, err := Arith(OpAdd, Int(2), Float(3.5))
	require.NoError(t, err)
	require.Equal(t, Float(5.5), v)

	v, err = Arith(OpMul, Int(2), NewDecimal(decimal.RequireFromString("1.5")))
	require.NoError(t, err)
	require.Equal(t, "3", v.(Decimal).D.String())
}

func TestArithDivModByZero(t *testing.T) {
	_, err := Arith(OpDiv, Int(1), Int(0))
	require.Error(t, err)
	_, err = Arith(OpMod, Int(1), Int(0))
	require.Error(t, err)
}

// TestDivModIdentity checks the division identity a == (a/b)*b + a%b.
func TestDivModIdentity(t *testing.T) {
	for _, pair := range [][2]Int{{17, 5}, {-17, 5}, {17, -5}, {0, 7}} {
		a, b := pair[0], pair[1]
		q, err := Arith(OpDiv, a, b)
		require.NoError(t, err)
		r, err := Arith(OpMod, a, b)
		require.NoError(t, err)
		got, err := Arith(OpAdd, mustArith(t, OpMul, q, b), r)
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
}

func mustArith(t *testing.T, op ArithOp, l, r Value) Value {
	t.Helper()
	v, err := Arith(op, l, r)
	require.NoError(t, err)
	return v
}

func TestCompareAndEqualCrossRank(t *testing.T) {
	c, err := Compare(Int(2), Float(2.0))
	require.NoError(t, err)
	require.Equal(t, 0, c)
	require.True(t, Equal(Int(2), Float(2.0)))
	require.False(t, Equal(Int(2), Str("2")))
}

func TestIDStableAcrossReads(t *testing.T) {
	a := NewArray([]Value{Int(1)})
	require.Equal(t, a.ID(), a.ID())
	require.Equal(t, Int(7).ID(), Int(7).ID())
	require.Equal(t, Str("hi").ID(), Str("hi").ID())
}
