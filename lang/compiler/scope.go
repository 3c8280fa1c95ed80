package compiler

// uninitialised marks a declared-but-not-yet-initialized local: the slot is
// reserved but not yet visible to name resolution.
const uninitialised = -1

// local is one lexical binding tracked by scope: its name, whether it may
// be reassigned, and the block depth at which it became visible.
type local struct {
	name    string
	mutable bool
	depth   int
}

// scope is the lexical-scope stack used to resolve local names to
// frame-relative slot indices. Slots correspond bijectively to runtime
// stack positions within the current frame.
type scope struct {
	locals []local
	depth  int
	high   int // high-water mark of len(locals), i.e. total slots needed
}

func (s *scope) begin() { s.depth++ }

// end pops every local declared at the scope being closed and reports how
// many were popped, so the caller can emit that many POP instructions.
func (s *scope) end() int {
	n := 0
	for len(s.locals) > 0 && s.locals[len(s.locals)-1].depth >= s.depth {
		s.locals = s.locals[:len(s.locals)-1]
		n++
	}
	s.depth--
	return n
}

func (s *scope) addVar(name string) int {
	s.locals = append(s.locals, local{name: name, mutable: true, depth: uninitialised})
	if len(s.locals) > s.high {
		s.high = len(s.locals)
	}
	return len(s.locals) - 1
}

func (s *scope) addConst(name string) int {
	s.locals = append(s.locals, local{name: name, mutable: false, depth: uninitialised})
	if len(s.locals) > s.high {
		s.high = len(s.locals)
	}
	return len(s.locals) - 1
}

// maxSlots returns the greatest number of simultaneously live locals seen,
// i.e. the number of frame slots the function needs.
func (s *scope) maxSlots() int { return s.high }

// dropLast removes the most recently added local without touching depth
// bookkeeping, used for compiler-synthesized temporaries (e.g. a cached
// index value) that are popped explicitly rather than via end().
func (s *scope) dropLast() {
	s.locals = s.locals[:len(s.locals)-1]
}

// initLast marks the most recently added local as initialized at the
// current depth, making it visible to subsequent resolve calls.
func (s *scope) initLast() {
	if len(s.locals) == 0 {
		return
	}
	s.locals[len(s.locals)-1].depth = s.depth
}

// hasDefined reports whether name is already declared in the current
// scope (ignoring shallower scopes and skipping not-yet-initialized
// entries from an enclosing depth).
func (s *scope) hasDefined(name string) bool {
	for i := len(s.locals) - 1; i >= 0; i-- {
		l := s.locals[i]
		if l.depth != uninitialised && l.depth < s.depth {
			break
		}
		if l.name == name {
			return true
		}
	}
	return false
}

// resolve walks the scope stack from the top and returns the slot index
// and mutability of the nearest local named name.
func (s *scope) resolve(name string) (slot int, mutable bool, ok bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].name == name && s.locals[i].depth != uninitialised {
			return i, s.locals[i].mutable, true
		}
	}
	return 0, false, false
}
