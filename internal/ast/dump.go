package ast

import (
	"fmt"
	"strings"
)

// Dump renders the subtree as indented text, one node per line:
//
//	Program
//	  Decl int
//	    Ident x
//
// Types are shown after a colon once they are known.
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if label := n.Label(); label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	if n.Type != TypeNone {
		fmt.Fprintf(b, " : %s", n.Type)
	}
	b.WriteByte('\n')
	for _, ch := range n.Children {
		dump(b, ch, depth+1)
	}
}

// Label is the short human readable payload of the node.
func (n *Node) Label() string {
	switch n.Kind {
	case KindIdent, KindIntLit, KindRealLit:
		return n.Value
	case KindDecl, KindIncDec, KindRead, KindWrite, KindBinary, KindUnary:
		return n.Op.Symbol()
	}
	return ""
}

// SExpr renders the subtree compactly, e.g. (Binary + (Ident a) (IntLit 1)).
func SExpr(n *Node) string {
	if n == nil {
		return "()"
	}
	var b strings.Builder
	sexpr(&b, n)
	return b.String()
}

func sexpr(b *strings.Builder, n *Node) {
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	if label := n.Label(); label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	for _, ch := range n.Children {
		b.WriteByte(' ')
		sexpr(b, ch)
	}
	b.WriteByte(')')
}
