// Package stage names the four analysis phases and their fixed dependency order.
package stage

import (
	"fmt"
	"strings"
)

// Stage describes one analysis phase. Values are totally ordered:
// every stage except Lexical consumes the artifact of the stage before it.
type Stage uint8

const (
	// Lexical turns raw text into tokens.
	Lexical Stage = iota
	// Syntax turns tokens into a syntax tree.
	Syntax
	// Semantic annotates the syntax tree with types and symbols.
	Semantic
	// Execution interprets the annotated tree.
	Execution
)

// Count is the number of stages.
const Count = int(Execution) + 1

// All returns the stages in dependency order.
func All() []Stage {
	return []Stage{Lexical, Syntax, Semantic, Execution}
}

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	return s <= Execution
}

func (s Stage) String() string {
	switch s {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Execution:
		return "execution"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ErrorKind returns the error taxonomy name diagnostics of this stage belong to.
func (s Stage) ErrorKind() string {
	switch s {
	case Lexical:
		return "LexicalError"
	case Syntax:
		return "SyntaxError"
	case Semantic:
		return "SemanticError"
	case Execution:
		return "RuntimeError"
	default:
		return "UnknownError"
	}
}

// Next returns the stage that depends on s. ok is false for Execution.
func (s Stage) Next() (Stage, bool) {
	if s >= Execution {
		return s, false
	}
	return s + 1, true
}

// Prev returns the stage s depends on. ok is false for Lexical.
func (s Stage) Prev() (Stage, bool) {
	if s == Lexical || !s.Valid() {
		return s, false
	}
	return s - 1, true
}

// Parse converts a user-facing name into a Stage.
// Besides canonical names it accepts the short CLI aliases (lex, parse, sema, run).
func Parse(name string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lexical", "lex", "tokens":
		return Lexical, nil
	case "syntax", "parse", "tree":
		return Syntax, nil
	case "semantic", "sema", "check":
		return Semantic, nil
	case "execution", "run", "exec":
		return Execution, nil
	default:
		return Lexical, fmt.Errorf("unknown stage %q (expected lexical|syntax|semantic|execution)", name)
	}
}
