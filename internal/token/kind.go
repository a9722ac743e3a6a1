package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal such as 42.
	IntLit
	// RealLit represents a literal with a fractional part such as 3.14.
	RealLit

	KwIf     // if
	KwElse   // else
	KwDo     // do
	KwWhile  // while
	KwRepeat // repeat
	KwUntil  // until
	KwRead   // read
	KwWrite  // write
	KwInt    // int
	KwFloat  // float
	KwDouble // double
	KwMain   // main
	KwReturn // return
	KwCin    // cin
	KwCout   // cout

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	EqEq       // ==
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Assign     // =
	PlusPlus   // ++
	MinusMinus // --
	Amp        // &
	Pipe       // |

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	RealLit:    "RealLit",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwDo:       "KwDo",
	KwWhile:    "KwWhile",
	KwRepeat:   "KwRepeat",
	KwUntil:    "KwUntil",
	KwRead:     "KwRead",
	KwWrite:    "KwWrite",
	KwInt:      "KwInt",
	KwFloat:    "KwFloat",
	KwDouble:   "KwDouble",
	KwMain:     "KwMain",
	KwReturn:   "KwReturn",
	KwCin:      "KwCin",
	KwCout:     "KwCout",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Caret:      "Caret",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	Assign:     "Assign",
	PlusPlus:   "PlusPlus",
	MinusMinus: "MinusMinus",
	Amp:        "Amp",
	Pipe:       "Pipe",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Comma:      "Comma",
	Colon:      "Colon",
	Semicolon:  "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSymbols = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Caret: "^",
	EqEq: "==", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Assign: "=", PlusPlus: "++", MinusMinus: "--", Amp: "&", Pipe: "|",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	Comma: ",", Colon: ":", Semicolon: ";",
}

// Symbol returns the source spelling of operators, punctuation and
// keywords; for the remaining kinds it falls back to String.
func (k Kind) Symbol() string {
	if s, ok := kindSymbols[k]; ok {
		return s
	}
	if s, ok := keywordText[k]; ok {
		return s
	}
	return k.String()
}

// Category groups kinds the way the token listing reports them.
func (k Kind) Category() string {
	switch {
	case k == Ident:
		return "identifier"
	case k == IntLit || k == RealLit:
		return "number"
	case k >= KwIf && k <= KwCout:
		return "keyword"
	case k >= Plus && k <= Pipe:
		return "operator"
	case k >= LParen && k <= Semicolon:
		return "punctuation"
	case k == EOF:
		return "eof"
	}
	return "invalid"
}
