package ast

import "compilab/internal/token"

// Type is the value type attached to declarations and expressions.
// Parser leaves expressions at TypeNone; the semantic stage fills them in.
type Type uint8

const (
	TypeNone Type = iota
	TypeInt
	TypeFloat
	TypeDouble
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	}
	return "none"
}

// IsReal reports whether values of t carry a fractional part.
func (t Type) IsReal() bool { return t == TypeFloat || t == TypeDouble }

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// TypeFromKeyword maps a declaration keyword to its type.
func TypeFromKeyword(k token.Kind) Type {
	switch k {
	case token.KwInt:
		return TypeInt
	case token.KwFloat:
		return TypeFloat
	case token.KwDouble:
		return TypeDouble
	}
	return TypeNone
}

// Promote returns the result type of arithmetic between a and b:
// real if either side is real, double winning over float.
func Promote(a, b Type) Type {
	switch {
	case a == TypeDouble || b == TypeDouble:
		return TypeDouble
	case a == TypeFloat || b == TypeFloat:
		return TypeFloat
	case a == TypeNone && b == TypeNone:
		return TypeNone
	}
	return TypeInt
}
