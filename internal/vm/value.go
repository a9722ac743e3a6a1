// Package vm is a tree-walking interpreter for checked compilab programs.
package vm

import (
	"math"
	"strconv"
	"strings"

	"compilab/internal/ast"
)

// Value is a runtime number. Int values use I, real values use F.
type Value struct {
	Type ast.Type
	I    int64
	F    float64
}

func IntValue(i int64) Value { return Value{Type: ast.TypeInt, I: i} }

func RealValue(f float64) Value { return Value{Type: ast.TypeDouble, F: f} }

func (v Value) IsReal() bool { return v.Type.IsReal() }

// Float returns the value widened to float64.
func (v Value) Float() float64 {
	if v.IsReal() {
		return v.F
	}
	return float64(v.I)
}

// Truthy follows C: any non-zero value is true.
func (v Value) Truthy() bool {
	if v.IsReal() {
		return v.F != 0
	}
	return v.I != 0
}

// Convert coerces v to the storage type of a variable. Reals stored into
// int variables are truncated toward zero; float variables round to
// single precision.
func (v Value) Convert(to ast.Type) Value {
	switch to {
	case ast.TypeInt:
		if v.IsReal() {
			return IntValue(truncate(v.F))
		}
		return IntValue(v.I)
	case ast.TypeFloat:
		return Value{Type: ast.TypeFloat, F: float64(float32(v.Float()))}
	case ast.TypeDouble:
		return Value{Type: ast.TypeDouble, F: v.Float()}
	}
	return v
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// String formats ints in decimal and reals with at least one fractional digit.
func (v Value) String() string {
	if !v.IsReal() {
		return strconv.FormatInt(v.I, 10)
	}
	bits := 64
	if v.Type == ast.TypeFloat {
		bits = 32
	}
	s := strconv.FormatFloat(v.F, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
