package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/gobc/lang/compiler"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/vm"
)

// Run compiles the given file and executes its package main.main, the
// equivalent of the teacher's parse/resolve pipeline collapsed into a
// single compile-then-run step since this architecture has no separate
// AST phase to inspect.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
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

	cfg, err := vm.LoadConfig()
	if err != nil {
		return printError(stdio, fmt.Errorf("loading vm configuration: %w", err))
	}

	m := vm.New(cfg, stdio, res.Functions)
	if err := m.Run(ctx, res.Program.Package); err != nil {
		return printError(stdio, err)
	}
	return nil
}
