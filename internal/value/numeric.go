package value

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lumenlang/lumen/internal/langerr"
)

// Int is a 64-bit signed integer. Overflow wraps: arithmetic is plain Go
// int64 arithmetic, which wraps silently just like the host language's
// own `int`. See DESIGN.md for the overflow decision.
type Int int64

func (i Int) ClassName() string { return "Int" }
func (i Int) Display() string   { return strconv.FormatInt(int64(i), 10) }
func (i Int) Inspect() string   { return i.Display() }
func (i Int) Docstring() string { return "" }
func (i Int) ID() int64         { return int64(i)<<1 ^ intIDSalt }

// intIDSalt keeps small-int ids from colliding with the monotonic NextID()
// counter used by every other kind; Int is value-typed so its
// id only needs to be stable across reads of equal values, not globally unique like a container's.
const intIDSalt = 0x5bd1e995

// Float is a 64-bit IEEE float.
type Float float64

func (f Float) ClassName() string { return "Float" }
func (f Float) Display() string   { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Inspect() string   { return f.Display() }
func (f Float) Docstring() string { return "" }
func (f Float) ID() int64         { return int64(math.Float64bits(float64(f))) }

// Decimal is an arbitrary-precision fixed-point number, backed by
// shopspring/decimal.
type Decimal struct{ D decimal.Decimal }

func NewDecimal(d decimal.Decimal) Decimal { return Decimal{D: d} }

func (d Decimal) ClassName() string { return "Decimal" }
func (d Decimal) Display() string   { return d.D.String() }
func (d Decimal) Inspect() string   { return d.D.String() }
func (d Decimal) Docstring() string { return "" }
func (d Decimal) ID() int64         { return int64(d.D.Hash()) }

// BigInt is an arbitrary-precision integer, backed by math/big.
type BigInt struct{ I *big.Int }

func NewBigInt(i *big.Int) BigInt { return BigInt{I: i} }

func (b BigInt) ClassName() string { return "BigInt" }
func (b BigInt) Display() string   { return b.I.String() }
func (b BigInt) Inspect() string   { return b.I.String() }
func (b BigInt) Docstring() string { return "" }
func (b BigInt) ID() int64         { return int64(b.I.Int64()) ^ 0x27d4eb2f }

// numRank orders the numeric tower for promotion: an operation between two
// different ranks promotes to the higher rank.
type numRank int

const (
	rankInt numRank = iota
	rankFloat
	rankBigInt
	rankDecimal
)

func rankOf(v Value) (numRank, bool) {
	switch v.(type) {
	case Int:
		return rankInt, true
	case Float:
		return rankFloat, true
	case BigInt:
		return rankBigInt, true
	case Decimal:
		return rankDecimal, true
	}
	return 0, false
}

// toDecimal converts any numeric kind to Decimal. Float conversion
// retains the value losslessly; a failed conversion is an error.
func toDecimal(v Value) (decimal.Decimal, error) {
	switch t := v.(type) {
	case Int:
		return decimal.NewFromInt(int64(t)), nil
	case Float:
		d, err := decimal.NewFromString(strconv.FormatFloat(float64(t), 'g', -1, 64))
		if err != nil {
			return decimal.Decimal{}, langerr.Value("cannot convert %v to Decimal: %s", t, err)
		}
		return d, nil
	case BigInt:
		return decimal.NewFromBigInt(t.I, 0), nil
	case Decimal:
		return t.D, nil
	}
	return decimal.Decimal{}, langerr.Type("expected a numeric value, got %s", v.ClassName())
}

func toBigInt(v Value) (*big.Int, bool) {
	switch t := v.(type) {
	case Int:
		return big.NewInt(int64(t)), true
	case BigInt:
		return t.I, true
	}
	return nil, false
}

func toFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	}
	return 0, false
}

// ArithOp is one of the five promotion-sensitive binary arithmetic ops.
type ArithOp string

const (
	OpAdd ArithOp = "+"
	OpSub ArithOp = "-"
	OpMul ArithOp = "*"
	OpDiv ArithOp = "/"
	OpMod ArithOp = "%"
)

// Arith applies the numeric tower promotion rules for the four
// arithmetic operators plus modulo. It assumes both operands are already
// known-numeric (Int/Float/BigInt/Decimal); struct-operand dispatch
// through receiver methods like `plus` happens one layer up, in the
// evaluator, before this function is ever called. Float mixed with
// BigInt is a TypeErr: a float has no exact BigInt widening, and mixing
// the two through Decimal instead must be spelled explicitly by the
// script.
func Arith(op ArithOp, left, right Value) (Value, error) {
	lr, ok1 := rankOf(left)
	rr, ok2 := rankOf(right)
	if !ok1 || !ok2 {
		return nil, langerr.Type("unsupported operand types for %s: %s and %s", op, left.ClassName(), right.ClassName())
	}
	rank := max(lr, rr)
	switch rank {
	case rankInt:
		return arithInt(op, Int(left.(Int)), Int(right.(Int)))
	case rankFloat:
		lf, _ := toFloat(left)
		rf, _ := toFloat(right)
		return arithFloat(op, lf, rf)
	case rankBigInt:
		lb, ok := toBigInt(left)
		if !ok {
			return nil, langerr.Type("cannot widen %s to BigInt", left.ClassName())
		}
		rb, ok := toBigInt(right)
		if !ok {
			return nil, langerr.Type("cannot widen %s to BigInt", right.ClassName())
		}
		return arithBigInt(op, lb, rb)
	case rankDecimal:
		ld, err := toDecimal(left)
		if err != nil {
			return nil, err
		}
		rd, err := toDecimal(right)
		if err != nil {
			return nil, err
		}
		return arithDecimal(op, ld, rd)
	}
	return nil, langerr.Type("unsupported operand types for %s: %s and %s", op, left.ClassName(), right.ClassName())
}

func arithInt(op ArithOp, l, r Int) (Value, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, langerr.Value("division by zero")
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return nil, langerr.Value("division by zero")
		}
		return l % r, nil
	}
	return nil, langerr.Type("unknown operator %s", op)
}

func arithFloat(op ArithOp, l, r float64) (Value, error) {
	switch op {
	case OpAdd:
		return Float(l + r), nil
	case OpSub:
		return Float(l - r), nil
	case OpMul:
		return Float(l * r), nil
	case OpDiv:
		if r == 0 {
			return nil, langerr.Value("division by zero")
		}
		return Float(l / r), nil
	case OpMod:
		if r == 0 {
			return nil, langerr.Value("division by zero")
		}
		return Float(math.Mod(l, r)), nil
	}
	return nil, langerr.Type("unknown operator %s", op)
}

func arithBigInt(op ArithOp, l, r *big.Int) (Value, error) {
	z := new(big.Int)
	switch op {
	case OpAdd:
		return NewBigInt(z.Add(l, r)), nil
	case OpSub:
		return NewBigInt(z.Sub(l, r)), nil
	case OpMul:
		return NewBigInt(z.Mul(l, r)), nil
	case OpDiv:
		if r.Sign() == 0 {
			return nil, langerr.Value("division by zero")
		}
		return NewBigInt(z.Quo(l, r)), nil
	case OpMod:
		if r.Sign() == 0 {
			return nil, langerr.Value("division by zero")
		}
		return NewBigInt(z.Rem(l, r)), nil
	}
	return nil, langerr.Type("unknown operator %s", op)
}

func arithDecimal(op ArithOp, l, r decimal.Decimal) (Value, error) {
	switch op {
	case OpAdd:
		return NewDecimal(l.Add(r)), nil
	case OpSub:
		return NewDecimal(l.Sub(r)), nil
	case OpMul:
		return NewDecimal(l.Mul(r)), nil
	case OpDiv:
		if r.IsZero() {
			return nil, langerr.Value("division by zero")
		}
		return NewDecimal(l.Div(r)), nil
	case OpMod:
		if r.IsZero() {
			return nil, langerr.Value("division by zero")
		}
		return NewDecimal(l.Mod(r)), nil
	}
	return nil, langerr.Type("unknown operator %s", op)
}

// Compare implements the numeric-tower-aware ordering used by < > <= >=.
// It returns an error for operands that aren't both numeric: ordering
// comparisons between unordered kinds fail rather than guess.
func Compare(left, right Value) (int, error) {
	lr, ok1 := rankOf(left)
	rr, ok2 := rankOf(right)
	if !ok1 || !ok2 {
		return 0, langerr.Type("cannot order %s and %s", left.ClassName(), right.ClassName())
	}
	rank := max(lr, rr)
	switch rank {
	case rankInt:
		l, r := left.(Int), right.(Int)
		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	case rankFloat:
		l, _ := toFloat(left)
		r, _ := toFloat(right)
		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	case rankBigInt:
		l, lok := toBigInt(left)
		r, rok := toBigInt(right)
		if !lok || !rok {
			return 0, langerr.Type("cannot order %s and %s", left.ClassName(), right.ClassName())
		}
		return l.Cmp(r), nil
	case rankDecimal:
		l, err := toDecimal(left)
		if err != nil {
			return 0, err
		}
		r, err := toDecimal(right)
		if err != nil {
			return 0, err
		}
		return l.Cmp(r), nil
	}
	return 0, langerr.Type("cannot order %s and %s", left.ClassName(), right.ClassName())
}

// Equal implements == / != semantics: same-kind value equality with
// cross-numeric promotion, false/true (never an error) for operands of
// unordered kinds.
func Equal(left, right Value) bool {
	if _, ok := rankOf(left); ok {
		if _, ok2 := rankOf(right); ok2 {
			c, err := Compare(left, right)
			return err == nil && c == 0
		}
		return false
	}
	switch l := left.(type) {
	case Bool:
		r, ok := right.(Bool)
		return ok && l == r
	case Str:
		r, ok := right.(Str)
		return ok && l == r
	case Bytes:
		r, ok := right.(Bytes)
		return ok && string(l) == string(r)
	case NilValue:
		return IsNil(right)
	default:
		return left.ID() == right.ID()
	}
}
