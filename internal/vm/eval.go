package vm

import (
	"math"
	"strconv"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/token"
)

func (vm *VM) eval(n *ast.Node) (Value, error) {
	if err := vm.step(n); err != nil {
		return Value{}, err
	}
	switch n.Kind {
	case ast.KindIntLit:
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			// литерал вне диапазона int64 читаем как real
			f, _ := strconv.ParseFloat(n.Value, 64)
			return RealValue(f), nil
		}
		return IntValue(i), nil
	case ast.KindRealLit:
		f, _ := strconv.ParseFloat(n.Value, 64)
		return RealValue(f), nil
	case ast.KindIdent:
		s, _ := vm.lookup(n)
		if s == nil || !s.init {
			return Value{}, runtimeErr(diag.RunUninitialized, n.Span, "read of uninitialised variable '%s'", n.Value)
		}
		return s.val, nil
	case ast.KindUnary:
		v, err := vm.eval(n.Child(0))
		if err != nil || n.Op != token.Minus {
			return v, err
		}
		if v.IsReal() {
			v.F = -v.F
		} else {
			v.I = -v.I
		}
		return v, nil
	case ast.KindBinary:
		return vm.binary(n)
	}
	return Value{}, nil
}

func boolValue(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

func (vm *VM) binary(n *ast.Node) (Value, error) {
	l, err := vm.eval(n.Child(0))
	if err != nil {
		return Value{}, err
	}
	// & и | - логические, с коротким замыканием
	switch n.Op {
	case token.Amp:
		if !l.Truthy() {
			return IntValue(0), nil
		}
	case token.Pipe:
		if l.Truthy() {
			return IntValue(1), nil
		}
	}
	r, err := vm.eval(n.Child(1))
	if err != nil {
		return Value{}, err
	}
	isReal := l.IsReal() || r.IsReal()

	switch n.Op {
	case token.Amp, token.Pipe:
		return boolValue(r.Truthy()), nil
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return boolValue(compare(n.Op, l, r, isReal)), nil
	case token.Plus, token.Minus, token.Star:
		if isReal {
			return RealValue(arithFloat(n.Op, l.Float(), r.Float())), nil
		}
		return IntValue(arithInt(n.Op, l.I, r.I)), nil
	case token.Slash:
		if (isReal && r.Float() == 0) || (!isReal && r.I == 0) {
			return Value{}, runtimeErr(diag.RunDivByZero, n.Span, "division by zero")
		}
		if isReal {
			return RealValue(l.Float() / r.Float()), nil
		}
		if l.I == math.MinInt64 && r.I == -1 {
			return IntValue(l.I), nil
		}
		return IntValue(l.I / r.I), nil
	case token.Percent:
		if isReal {
			if r.Float() == 0 {
				return Value{}, runtimeErr(diag.RunDivByZero, n.Span, "modulo by zero")
			}
			return RealValue(math.Mod(l.Float(), r.Float())), nil
		}
		if r.I == 0 {
			return Value{}, runtimeErr(diag.RunDivByZero, n.Span, "modulo by zero")
		}
		if r.I == -1 {
			return IntValue(0), nil
		}
		return IntValue(l.I % r.I), nil
	case token.Caret:
		if isReal || r.I < 0 {
			return RealValue(math.Pow(l.Float(), r.Float())), nil
		}
		return IntValue(powInt(l.I, r.I)), nil
	}
	return Value{}, nil
}

func compare(op token.Kind, l, r Value, isReal bool) bool {
	var c int
	if isReal {
		lf, rf := l.Float(), r.Float()
		switch {
		case lf < rf:
			c = -1
		case lf > rf:
			c = 1
		}
	} else {
		switch {
		case l.I < r.I:
			c = -1
		case l.I > r.I:
			c = 1
		}
	}
	switch op {
	case token.EqEq:
		return c == 0
	case token.BangEq:
		return c != 0
	case token.Lt:
		return c < 0
	case token.LtEq:
		return c <= 0
	case token.Gt:
		return c > 0
	default:
		return c >= 0
	}
}

func arithInt(op token.Kind, a, b int64) int64 {
	switch op {
	case token.Plus:
		return a + b
	case token.Minus:
		return a - b
	default:
		return a * b
	}
}

func arithFloat(op token.Kind, a, b float64) float64 {
	switch op {
	case token.Plus:
		return a + b
	case token.Minus:
		return a - b
	default:
		return a * b
	}
}

// powInt - возведение в степень через квадраты, переполнение оборачивается как в int64
func powInt(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
