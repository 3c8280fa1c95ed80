package value_test

import (
	"testing"

	"github.com/mna/gobc/lang/value"
	"github.com/stretchr/testify/require"
)

func TestConvertToTruncatesNarrowerInteger(t *testing.T) {
	v, err := value.ConvertTo(value.Int(300), value.Simple(value.KindUint8))
	require.NoError(t, err)
	require.Equal(t, value.Uint8(300%256), v)
}

func TestConvertToFloatTruncatesTowardZero(t *testing.T) {
	v, err := value.ConvertTo(value.Float64(3.9), value.Simple(value.KindInt))
	require.NoError(t, err)
	require.Equal(t, value.Int(3), v)
}

func TestConvertToFloatWidens(t *testing.T) {
	v, err := value.ConvertTo(value.Int32(7), value.Simple(value.KindFloat64))
	require.NoError(t, err)
	require.Equal(t, value.Float64(7), v)
}

func TestConvertIntToStringIsCodePoint(t *testing.T) {
	v, err := value.ConvertTo(value.Int32(104), value.Simple(value.KindString))
	require.NoError(t, err)
	require.Equal(t, value.String("h"), v)
}

func TestConvertRuneSliceToString(t *testing.T) {
	sl := value.NewSlice([]value.Value{value.Int32(104), value.Int32(105)}, value.Simple(value.KindInt32))
	v, err := value.ConvertTo(sl, value.Simple(value.KindString))
	require.NoError(t, err)
	require.Equal(t, value.String("hi"), v)
}

func TestConvertByteSliceToString(t *testing.T) {
	sl := value.NewSlice([]value.Value{value.Uint8('h'), value.Uint8('i')}, value.Simple(value.KindUint8))
	v, err := value.ConvertTo(sl, value.Simple(value.KindString))
	require.NoError(t, err)
	require.Equal(t, value.String("hi"), v)
}

func TestConvertComplexWidens(t *testing.T) {
	v, err := value.ConvertTo(value.Complex64(complex64(complex(1, 2))), value.Simple(value.KindComplex128))
	require.NoError(t, err)
	require.Equal(t, value.Complex128(complex(1, 2)), v)
}

func TestConvertUnsupportedTargetErrors(t *testing.T) {
	_, err := value.ConvertTo(value.Int(1), value.Simple(value.KindBool))
	require.Error(t, err)
}
