package maincmd

import (
	"context"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/compiler"
	"github.com/mna/gobc/lang/token"
)

// Disasm compiles the given file and prints a disassembly of the emitted
// bytecode, replacing the teacher's parse/resolve AST-dump commands: there
// is no AST here, so bytecode is the only intermediate form worth dumping.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		return printError(stdio, err)
	}

	res, err := compiler.CompileSource(file, src)
	if err != nil {
		token.PrintError(stdio.Stderr, err)
		return err
	}

	bytecode.DisassembleProgram(stdio.Stdout, res.Program)
	return nil
}
