package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/gobc/lang/lexer"
	"github.com/mna/gobc/lang/token"
)

// Tokenize runs the scanner phase alone and prints the resulting lexeme
// stream, one per line, the same shape as the teacher's tokenize command
// but against this project's own (simpler) Position type, which has no
// file-set indirection since each invocation handles a single file.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		return printError(stdio, err)
	}

	lxs, err := lexer.ScanAll(src)
	for _, lx := range lxs {
		fmt.Fprintf(stdio.Stdout, "%s: %s", lx.Pos, lx.Tok)
		if lx.Lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", lx.Lit)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	if err != nil {
		token.PrintError(stdio.Stderr, err)
		return err
	}
	return nil
}
