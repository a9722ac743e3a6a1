package ast

// Kind is the syntactic category of a Node.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindBlock
	KindMain
	KindDecl   // int a, b;
	KindAssign // a = expr;
	KindIncDec // a++; a--;
	KindIf
	KindWhile
	KindDoWhile
	KindRepeat
	KindRead  // cin a; read a;
	KindWrite // cout expr; write expr;
	KindReturn
	KindBinary
	KindUnary
	KindIdent
	KindIntLit
	KindRealLit
)

var kindNames = [...]string{
	KindInvalid: "Invalid",
	KindProgram: "Program",
	KindBlock:   "Block",
	KindMain:    "Main",
	KindDecl:    "Decl",
	KindAssign:  "Assign",
	KindIncDec:  "IncDec",
	KindIf:      "If",
	KindWhile:   "While",
	KindDoWhile: "DoWhile",
	KindRepeat:  "Repeat",
	KindRead:    "Read",
	KindWrite:   "Write",
	KindReturn:  "Return",
	KindBinary:  "Binary",
	KindUnary:   "Unary",
	KindIdent:   "Ident",
	KindIntLit:  "IntLit",
	KindRealLit: "RealLit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsExpr reports whether nodes of this kind produce a value.
func (k Kind) IsExpr() bool {
	return k >= KindBinary && k <= KindRealLit
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
