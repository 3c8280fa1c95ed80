package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/gobc/lang/compiler"
)

func TestCompileSourceRejectsDanglingFallthrough(t *testing.T) {
	src := `package main

func main() {
	x := 1
	switch x {
	case 1:
		fallthrough
	}
}
`
	_, err := compiler.CompileSource("test.gobc", []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "fallthrough statement out of place")
}

func TestCompileSourceRejectsMultipleDefaults(t *testing.T) {
	src := `package main

func main() {
	x := 1
	switch x {
	default:
	default:
	}
}
`
	_, err := compiler.CompileSource("test.gobc", []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple default clauses")
}

func TestCompileSourceAcceptsFallthroughIntoNextCase(t *testing.T) {
	src := `package main

func main() {
	x := 1
	switch x {
	case 1:
		fallthrough
	case 2:
	}
}
`
	_, err := compiler.CompileSource("test.gobc", []byte(src))
	require.NoError(t, err)
}
