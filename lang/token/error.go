package token

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a single positioned error produced by the lexer or the compiler.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList is an accumulating, sortable collection of Errors. The zero
// value is ready to use. This mirrors the way the standard library's
// go/scanner.ErrorList batches lex/parse errors for delivery at the end of a
// phase instead of aborting on the first one.
type ErrorList []Error

// Add appends a new error to the list.
func (el *ErrorList) Add(pos Position, msg string) {
	*el = append(*el, Error{Pos: pos, Msg: msg})
}

// Sort orders the list by position.
func (el ErrorList) Sort() {
	sort.Slice(el, func(i, j int) bool {
		pi, pj := el[i].Pos, el[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})
}

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (and %d more errors)", el[0], len(el)-1)
	return sb.String()
}

// Err returns el as an error if it is non-empty, else nil. The returned
// error, when non-nil, also implements Unwrap() []error so callers may use
// errors.Is/As across the whole batch.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Unwrap exposes the individual errors for errors.Is/As/Join-style
// inspection.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// PrintError writes each error in el, one per line, to w.
func PrintError(w interface{ Write([]byte) (int, error) }, err error) {
	if el, ok := err.(ErrorList); ok {
		for _, e := range el {
			fmt.Fprintf(w, "%s\n", e)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}
