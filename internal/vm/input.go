package vm

import (
	"strconv"
	"strings"

	"compilab/internal/ast"
)

// inputQueue hands out whitespace separated fields of the program input.
type inputQueue struct {
	fields []string
	next   int
}

func newInputQueue(input string) *inputQueue {
	return &inputQueue{fields: strings.Fields(input)}
}

func (q *inputQueue) pop() (string, bool) {
	if q.next >= len(q.fields) {
		return "", false
	}
	f := q.fields[q.next]
	q.next++
	return f, true
}

// parseNumber converts a field for a variable of type typ. Integer
// variables accept only integer text.
func parseNumber(field string, typ ast.Type) (Value, bool) {
	if typ == ast.TypeInt {
		i, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return IntValue(i), true
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return Value{}, false
	}
	return RealValue(f).Convert(typ), true
}
