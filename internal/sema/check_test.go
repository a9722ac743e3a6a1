package sema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/parser"
	"compilab/internal/sema"
	"compilab/internal/source"
)

func check(t *testing.T, src string) (*ast.Tree, *sema.Tree, []diag.Diagnostic) {
	t.Helper()
	f := source.NewVirtual("test", src)
	synBag := diag.NewBag(0)
	syntax := parser.ParseFile(f, parser.Options{Reporter: diag.BagReporter{Bag: synBag, File: f}})
	require.Zero(t, synBag.Len(), "syntax errors: %s", diag.FormatShort(synBag.Items(), false))

	bag := diag.NewBag(0)
	out := sema.Check(syntax, sema.Options{Reporter: diag.BagReporter{Bag: bag, File: f}})
	bag.Sort()
	return syntax, out, bag.Items()
}

func TestCleanProgram(t *testing.T) {
	_, out, diags := check(t, `
main() {
  int n, i;
  double acc;
  cin n;
  i = 0;
  acc = 0.5;
  while i < n {
    acc = acc * 2;
    i++;
  }
  cout acc;
}`)
	require.Empty(t, diags, diag.FormatShort(diags, false))

	syms := out.Symbols.All()
	require.Len(t, syms, 3)
	require.Equal(t, "n", syms[0].Name)
	require.Equal(t, ast.TypeInt, syms[0].Type)
	require.Equal(t, []int{3, 5, 8}, syms[0].Lines)
	require.Equal(t, 2, syms[2].Loc)
	require.Equal(t, ast.TypeDouble, syms[2].Type)
}

func TestDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "redeclaration",
			src:  "int x;\nfloat x;\nx = 1;\ncout x;",
			want: "error SEM3001 2:7 variable 'x' already declared as int",
		},
		{
			name: "undeclared",
			src:  "cout y + 1;",
			want: "error SEM3002 1:6 variable 'y' used without declaration",
		},
		{
			name: "modulo on real",
			src:  "double d;\nd = 1.5;\ncout d % 2;",
			want: "error SEM3003 3:6 '%' requires integer operands, got double",
		},
		{
			name: "narrowing",
			src:  "int i;\ni = 2.5;\ncout i;",
			want: "warning SEM3004 2:1 implicit conversion from double to int in assignment to 'i' truncates the value",
		},
		{
			name: "unused",
			src:  "int u;\nu = 1;",
			want: "warning SEM3005 1:5 variable 'u' declared but never used",
		},
		{
			name: "never assigned",
			src:  "int r;\ncout r;",
			want: "warning SEM3006 1:5 variable 'r' is read but never assigned",
		},
		{
			name: "return outside main",
			src:  "return 1;",
			want: "error SEM3007 1:1 return outside of main",
		},
		{
			name: "int result of comparison assigns cleanly",
			src:  "int b;\ndouble z;\nz = 1.0;\nb = z > 0.5;\ncout b;",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, diags := check(t, tc.src)
			require.Equal(t, tc.want, diag.FormatShort(diags, false))
		})
	}
}

func TestRedeclarationCarriesNote(t *testing.T) {
	_, _, diags := check(t, "int x, x;\nx = 1;\ncout x;")
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Notes, 1)
	require.Equal(t, source.Span{Start: 4, End: 5}, diags[0].Notes[0].Span)
}

func TestTypesAnnotatedOnCloneOnly(t *testing.T) {
	syntax, out, _ := check(t, "int a;\ndouble b;\na = 1;\nb = a + 0.5;\ncout b;")
	before := ast.Dump(syntax.Root)

	assign := out.Root.Children[3]
	require.Equal(t, ast.TypeDouble, assign.Type)
	require.Equal(t, ast.TypeDouble, assign.Child(1).Type)
	require.Equal(t, ast.TypeInt, assign.Child(1).Child(0).Type)

	require.Equal(t, ast.TypeNone, syntax.Root.Children[3].Child(1).Type)
	require.Equal(t, before, ast.Dump(syntax.Root))
}

func TestNilTree(t *testing.T) {
	out := sema.Check(nil, sema.Options{})
	require.NotNil(t, out.Root)
	require.Zero(t, out.Symbols.Len())
}
