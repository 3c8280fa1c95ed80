package vm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/mna/gobc/lang/compiler"
	"github.com/mna/gobc/lang/vm"
)

// run compiles src and executes it, returning what was written to stdout
// and stderr. print/println write to stderr (§6), so most of these
// scenarios check ebuf.
func run(t *testing.T, src string) (stdout, stderr string, err error) {
	t.Helper()
	res, cerr := compiler.CompileSource("test.gobc", []byte(src))
	require.NoError(t, cerr)

	var obuf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &obuf, Stderr: &ebuf}
	m := vm.New(vm.Config{MaxSteps: 1_000_000, InitialStack: 64}, stdio, res.Functions)
	err = m.Run(context.Background(), res.Program.Package)
	return obuf.String(), ebuf.String(), err
}

func TestPrintlnSeparatesArgsWithSpaces(t *testing.T) {
	src := `package main

func main() {
	println(10, 20, 30)
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "10 20 30\n", ebuf)
}

func TestFunctionCallsAndReturn(t *testing.T) {
	src := `package main

func add(a int, b int) int {
	return a + b
}

func main() {
	println(add(3, 4), add(4, 5), add(1, 2))
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "7 9 3\n", ebuf)
}

func TestLocalsAndLoop(t *testing.T) {
	src := `package main

func main() {
	total := 0
	i := 0
	for i < 5 {
		total = total + i
		i = i + 1
	}
	println(total)
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "10\n", ebuf)
}

func TestDeferLIFOOrder(t *testing.T) {
	src := `package main

func greet() {
	defer println("c")
	defer println("b")
	println("a")
}

func main() {
	greet()
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", ebuf)
}

func TestArrayParamIsCopiedSliceIsAliased(t *testing.T) {
	src := `package main

func mutateArray(a [3]int) {
	a[0] = 99
}

func mutateSlice(s []int) {
	s[0] = 99
}

func main() {
	arr := [3]int{1, 2, 3}
	mutateArray(arr)
	println(arr[0])

	sl := []int{1, 2, 3}
	mutateSlice(sl)
	println(sl[0])
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n99\n", ebuf)
}

func TestElidedLengthArrayLiteral(t *testing.T) {
	src := `package main

func main() {
	arr := [...]int{1, 2, 3, 4}
	println(len(arr), arr[0], arr[3])
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "4 1 4\n", ebuf)
}

func TestVariadicCallPacksTrailingArgsIntoSlice(t *testing.T) {
	src := `package main

func sum(nums ...int) int {
	total := 0
	i := 0
	for i < len(nums) {
		total = total + nums[i]
		i = i + 1
	}
	return total
}

func main() {
	println(sum(), sum(1), sum(1, 2))
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "0 1 3\n", ebuf)
}

func TestDivideByZeroIsRuntimeError(t *testing.T) {
	src := `package main

func main() {
	x := 1
	y := 0
	println(x / y)
}
`
	_, _, err := run(t, src)
	require.Error(t, err)
	var rerr *vm.RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestIndexOutOfRangeIsRuntimeError(t *testing.T) {
	src := `package main

func main() {
	sl := []int{1, 2, 3}
	println(sl[5])
}
`
	_, _, err := run(t, src)
	require.Error(t, err)
	var rerr *vm.RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestAppendGrowsSliceWithoutAliasingOriginal(t *testing.T) {
	src := `package main

func main() {
	a := []int{1, 2}
	b := append(a, 3)
	println(len(a), len(b), b[2])
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "2 3 3\n", ebuf)
}

func TestStringConversionFromRuneSlice(t *testing.T) {
	src := `package main

func main() {
	runes := []int32{104, 105}
	println(string(runes))
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "hi\n", ebuf)
}

func TestComplexBuiltins(t *testing.T) {
	src := `package main

func main() {
	c := complex(1.0, 2.0)
	println(real(c), imag(c))
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1 2\n", ebuf)
}

func TestSwitchWithFallthroughAndDefault(t *testing.T) {
	src := `package main

func classify(x int) {
	switch x {
	case 1:
		println("one")
		fallthrough
	case 2:
		println("one-or-two")
	default:
		println("other")
	}
}

func main() {
	classify(1)
	classify(2)
	classify(3)
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "one\none-or-two\none-or-two\nother\n", ebuf)
}

func TestArgumentTypeMismatchIsRuntimeError(t *testing.T) {
	src := `package main

func f(x int) {
	println(x)
}

func main() {
	f("hi")
}
`
	_, _, err := run(t, src)
	require.Error(t, err)
	var rerr *vm.RuntimeError
	require.ErrorAs(t, err, &rerr)
}

func TestExplicitConversionAvoidsOperandTypeMismatch(t *testing.T) {
	src := `package main

func main() {
	var a int = 1
	var b int8 = 2
	println(a + int(b))
}
`
	_, ebuf, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "3\n", ebuf)
}

func TestMixedConcreteKindsIsRuntimeErrorNotPanic(t *testing.T) {
	src := `package main

var a int = 1
var b int8 = 2

func main() {
	println(a + b)
}
`
	_, _, err := run(t, src)
	require.Error(t, err)
	var rerr *vm.RuntimeError
	require.ErrorAs(t, err, &rerr)
	require.Contains(t, err.Error(), "operand type mismatch")
}

func TestPanicIsRuntimeError(t *testing.T) {
	src := `package main

func main() {
	panic("boom")
}
`
	_, _, err := run(t, src)
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}
