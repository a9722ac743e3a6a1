package vm

import (
	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/token"
)

func (vm *VM) block(list []*ast.Node) error {
	for _, st := range list {
		if err := vm.exec(st); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) exec(n *ast.Node) error {
	if err := vm.step(n); err != nil {
		return err
	}
	switch n.Kind {
	case ast.KindDecl:
		return nil
	case ast.KindAssign:
		v, err := vm.eval(n.Child(1))
		if err != nil {
			return err
		}
		return vm.store(n.Child(0), v)
	case ast.KindIncDec:
		cur, err := vm.eval(n.Child(0))
		if err != nil {
			return err
		}
		delta := int64(1)
		if n.Op == token.MinusMinus {
			delta = -1
		}
		if cur.IsReal() {
			return vm.store(n.Child(0), RealValue(cur.F+float64(delta)))
		}
		return vm.store(n.Child(0), IntValue(cur.I+delta))
	case ast.KindRead:
		return vm.read(n)
	case ast.KindWrite:
		v, err := vm.eval(n.Child(0))
		if err != nil {
			return err
		}
		vm.out.WriteString(v.String())
		vm.out.WriteByte('\n')
		return nil
	case ast.KindReturn:
		v, err := vm.eval(n.Child(0))
		if err != nil {
			return err
		}
		vm.exit = &v
		return errReturn
	case ast.KindIf:
		c, err := vm.eval(n.Child(0))
		if err != nil {
			return err
		}
		if c.Truthy() {
			return vm.exec(n.Child(1))
		}
		if els := n.Child(2); els != nil {
			return vm.exec(els)
		}
		return nil
	case ast.KindWhile:
		for {
			c, err := vm.eval(n.Child(0))
			if err != nil {
				return err
			}
			if !c.Truthy() {
				return nil
			}
			if err := vm.exec(n.Child(1)); err != nil {
				return err
			}
		}
	case ast.KindDoWhile, ast.KindRepeat:
		// do-while повторяет, пока условие истинно; repeat - пока ложно
		for {
			if err := vm.exec(n.Child(0)); err != nil {
				return err
			}
			c, err := vm.eval(n.Child(1))
			if err != nil {
				return err
			}
			if c.Truthy() != (n.Kind == ast.KindDoWhile) {
				return nil
			}
		}
	case ast.KindMain:
		return vm.exec(n.Child(0))
	case ast.KindBlock:
		return vm.block(n.Children)
	}
	return nil
}

func (vm *VM) store(id *ast.Node, v Value) error {
	s, sym := vm.lookup(id)
	if s == nil {
		return runtimeErr(diag.RunUninitialized, id.Span, "assignment to unknown variable '%s'", id.Value)
	}
	s.val = v.Convert(sym.Type)
	s.init = true
	return nil
}

func (vm *VM) read(n *ast.Node) error {
	id := n.Child(0)
	s, sym := vm.lookup(id)
	if s == nil {
		return runtimeErr(diag.RunUninitialized, id.Span, "read into unknown variable '%s'", id.Value)
	}
	field, ok := vm.input.pop()
	if !ok {
		return runtimeErr(diag.RunInputEOF, n.Span, "input exhausted while reading '%s'", id.Value)
	}
	v, ok := parseNumber(field, sym.Type)
	if !ok {
		return runtimeErr(diag.RunBadInput, n.Span, "cannot read %q as %s into '%s'", field, sym.Type, id.Value)
	}
	s.val = v
	s.init = true
	return nil
}
