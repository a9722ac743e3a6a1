package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"compilab/internal/ast"
	"compilab/internal/symbols"
)

// NodeOutput is the serializable form of an ast.Node.
type NodeOutput struct {
	Kind     string       `json:"kind" msgpack:"kind"`
	Label    string       `json:"label,omitempty" msgpack:"label,omitempty"`
	Type     string       `json:"type,omitempty" msgpack:"type,omitempty"`
	Line     int          `json:"line,omitempty" msgpack:"line,omitempty"`
	Start    uint32       `json:"start" msgpack:"start"`
	End      uint32       `json:"end" msgpack:"end"`
	Children []NodeOutput `json:"children,omitempty" msgpack:"children,omitempty"`
}

// BuildTreeOutput converts the subtree rooted at n.
func BuildTreeOutput(n *ast.Node) NodeOutput {
	if n == nil {
		return NodeOutput{}
	}
	out := NodeOutput{
		Kind:  n.Kind.String(),
		Label: n.Label(),
		Line:  n.Line,
		Start: n.Span.Start,
		End:   n.Span.End,
	}
	if n.Type != ast.TypeNone {
		out.Type = n.Type.String()
	}
	for _, ch := range n.Children {
		out.Children = append(out.Children, BuildTreeOutput(ch))
	}
	return out
}

// FormatTreePretty prints the indented tree dump.
func FormatTreePretty(w io.Writer, tree *ast.Tree) error {
	if tree == nil || tree.Root == nil {
		_, err := fmt.Fprintln(w, "<empty tree>")
		return err
	}
	_, err := io.WriteString(w, ast.Dump(tree.Root))
	return err
}

func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	var root NodeOutput
	if tree != nil {
		root = BuildTreeOutput(tree.Root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// SymbolOutput is one symbol table row.
type SymbolOutput struct {
	Name  string `json:"name" msgpack:"name"`
	Type  string `json:"type" msgpack:"type"`
	Loc   int    `json:"loc" msgpack:"loc"`
	Lines []int  `json:"lines" msgpack:"lines"`
	Flags string `json:"flags,omitempty" msgpack:"flags,omitempty"`
}

func BuildSymbolsOutput(table *symbols.Table) []SymbolOutput {
	if table == nil {
		return nil
	}
	all := table.All()
	out := make([]SymbolOutput, 0, len(all))
	for _, s := range all {
		out = append(out, SymbolOutput{
			Name:  s.Name,
			Type:  s.Type.String(),
			Loc:   s.Loc,
			Lines: s.Lines,
			Flags: s.Flags.String(),
		})
	}
	return out
}

// FormatSymbolsPretty prints the symbol table as aligned columns.
func FormatSymbolsPretty(w io.Writer, table *symbols.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tLOC\tLINES")
	for _, s := range BuildSymbolsOutput(table) {
		lines := make([]string, len(s.Lines))
		for i, l := range s.Lines {
			lines[i] = fmt.Sprint(l)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Name, s.Type, s.Loc, strings.Join(lines, " "))
	}
	return tw.Flush()
}
