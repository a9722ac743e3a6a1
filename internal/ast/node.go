package ast

import (
	"compilab/internal/source"
	"compilab/internal/token"
)

// Node is one vertex of the syntax tree.
//
// Children layout per kind:
//
//	Program, Block  statements
//	Main            [Block]
//	Decl            Ident... (Op holds the type keyword)
//	Assign          [Ident, expr]
//	IncDec          [Ident] (Op is ++ or --)
//	If              [cond, Block, else?] where else is Block or If
//	While           [cond, Block]
//	DoWhile, Repeat [Block, cond]
//	Read            [Ident] (Op is cin or read)
//	Write, Return   [expr]
//	Binary          [lhs, rhs]
//	Unary           [operand]
type Node struct {
	Kind     Kind
	Op       token.Kind
	Value    string
	Span     source.Span
	Line     int // строка начала узла, 1-based
	Children []*Node
	Type     Type
}

// Tree is the syntax-stage artifact.
type Tree struct {
	Root *Node
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{Root: t.Root.Clone()}
}

// Walk visits n in pre-order. Returning false from fn skips the children
// of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, ch := range n.Children {
		Walk(ch, fn)
	}
}

// Count returns the number of nodes in the subtree.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}
