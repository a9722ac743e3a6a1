package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"compilab/internal/ast"
	"compilab/internal/source"
	"compilab/internal/symbols"
)

func TestInsertLookupTouch(t *testing.T) {
	tab := symbols.NewTable(0)

	x, ok := tab.Insert("x", ast.TypeInt, source.Span{Start: 4, End: 5}, 1)
	require.True(t, ok)
	y, ok := tab.Insert("y", ast.TypeDouble, source.Span{Start: 14, End: 15}, 2)
	require.True(t, ok)

	again, ok := tab.Insert("x", ast.TypeFloat, source.Span{}, 7)
	require.False(t, ok)
	require.Equal(t, x, again)
	require.Equal(t, ast.TypeInt, tab.Get(x).Type, "redeclaration must not overwrite")

	tab.Touch(x, 3)
	tab.Touch(x, 3)
	tab.Touch(x, 5)
	tab.Mark(y, symbols.SymbolFlagAssigned)

	got, ok := tab.Lookup("x")
	require.True(t, ok)
	require.Equal(t, x, got)
	_, ok = tab.Lookup("z")
	require.False(t, ok)

	all := tab.All()
	require.Len(t, all, 2)
	require.Equal(t, "x", all[0].Name)
	require.Equal(t, 0, all[0].Loc)
	require.Equal(t, []int{1, 3, 5}, all[0].Lines)
	require.Equal(t, 1, all[1].Loc)
	require.Equal(t, "assigned", all[1].Flags.String())

	all[0].Lines[0] = 99
	require.Equal(t, 1, tab.Get(x).Lines[0], "All must return copies")
}

func TestGetOutOfRange(t *testing.T) {
	tab := symbols.NewTable(4)
	require.Nil(t, tab.Get(symbols.NoSymbolID))
	require.Nil(t, tab.Get(symbols.SymbolID(3)))
	tab.Touch(symbols.SymbolID(3), 1)
	require.Zero(t, tab.Len())
}
