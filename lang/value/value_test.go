package value_test

import (
	"testing"

	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
	"github.com/stretchr/testify/require"
)

func TestLoseLiteralIdempotent(t *testing.T) {
	v, err := value.LoseLiteral(value.IntLiteral(3), value.Simple(value.KindInt32))
	require.NoError(t, err)
	require.Equal(t, value.Int32(3), v)

	// re-applying the rule to an already-concrete value is a no-op
	v2, err := value.LoseLiteral(v, value.Simple(value.KindInt32))
	require.NoError(t, err)
	require.Equal(t, v, v2)
}

func TestBinaryPromotesUntypedOperand(t *testing.T) {
	r, err := value.Binary(token.PLUS, value.Int32(1), value.IntLiteral(2))
	require.NoError(t, err)
	require.Equal(t, value.Int32(3), r)
}

func TestDivideByZeroIsError(t *testing.T) {
	_, err := value.Binary(token.SLASH, value.Int(1), value.Int(0))
	require.ErrorIs(t, err, value.ErrDivideByZero)
}

func TestUnsignedSubtractionWraps(t *testing.T) {
	r, err := value.Binary(token.MINUS, value.Uint8(0), value.Uint8(1))
	require.NoError(t, err)
	require.Equal(t, value.Uint8(255), r)
}

func TestIntOverflowWrapsSilently(t *testing.T) {
	r, err := value.Binary(token.PLUS, value.Int8(127), value.Int8(1))
	require.NoError(t, err)
	require.Equal(t, value.Int8(-128), r)
}

func TestArrayCopyIsDeepSliceIsAlias(t *testing.T) {
	a := value.NewArray([]value.Value{value.Int(1), value.Int(2)}, value.Simple(value.KindInt))
	b := a.Copy()
	b.SetIndex(0, value.Int(9))
	require.Equal(t, value.Int(1), a.Index(0))
	require.Equal(t, value.Int(9), b.Index(0))

	s := value.NewSlice([]value.Value{value.Int(1), value.Int(2)}, value.Simple(value.KindInt))
	u := s // aliasing copy, same handle
	u.SetIndex(0, value.Int(9))
	require.Equal(t, value.Int(9), s.Index(0))
}

func TestIntCastRoundTrip(t *testing.T) {
	// int(int8(x)) == x for x in [-128, 127]
	x := value.Int(100)
	asInt8, err := value.LoseLiteral(value.IntLiteral(int64(x)), value.Simple(value.KindInt8))
	require.NoError(t, err)
	require.Equal(t, value.Int8(100), asInt8)

	back, err := value.ConvertTo(asInt8, value.Simple(value.KindInt))
	require.NoError(t, err)
	require.Equal(t, x, back)
}

func TestFloatLiteralEpsilonComparison(t *testing.T) {
	eq, err := value.Compare(token.EQ, value.FloatLiteral(1.0000000001), value.FloatLiteral(1.0000000002))
	require.NoError(t, err)
	require.True(t, bool(eq))
}

func TestBinaryMismatchedConcreteKindsIsTypeMismatch(t *testing.T) {
	_, err := value.Binary(token.PLUS, value.Int(1), value.Int8(2))
	require.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestCompareMismatchedConcreteKindsIsTypeMismatch(t *testing.T) {
	_, err := value.Compare(token.EQ, value.Int(1), value.Int8(2))
	require.ErrorIs(t, err, value.ErrTypeMismatch)
}

func TestCompareAgainstNil(t *testing.T) {
	eq, err := value.Compare(token.EQ, value.Nil{}, value.Nil{})
	require.NoError(t, err)
	require.True(t, bool(eq))

	neq, err := value.Compare(token.NEQ, value.Int(1), value.Nil{})
	require.NoError(t, err)
	require.True(t, bool(neq))
}
