package diagfmt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/diagfmt"
	"compilab/internal/driver"
	"compilab/internal/lexer"
	"compilab/internal/pipeline"
	"compilab/internal/sema"
	"compilab/internal/source"
	"compilab/internal/stage"
)

const badSrc = "int a;\na = 1 @ 2;\n"

func lexDiag() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    stage.Lexical,
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "unknown character '@'",
		Span:     source.Span{Start: 13, End: 14},
		Row:      2,
		Column:   7,
	}
}

func TestPrettyPlain(t *testing.T) {
	file := source.NewVirtual("t.cl", badSrc)
	var buf bytes.Buffer
	err := diagfmt.Pretty(&buf, []diag.Diagnostic{lexDiag()}, file, diagfmt.PrettyOpts{})
	require.NoError(t, err)

	want := "t.cl:2:7: ERROR LEX1001: unknown character '@'\n" +
		"2 | a = 1 @ 2;\n" +
		"  |       ^\n"
	require.Equal(t, want, buf.String())
}

func TestPrettyContextAndStage(t *testing.T) {
	file := source.NewVirtual("t.cl", badSrc)
	d := lexDiag()
	d.Span = source.Span{Start: 11, End: 16}
	d.Column = 5
	var buf bytes.Buffer
	err := diagfmt.Pretty(&buf, []diag.Diagnostic{d}, file, diagfmt.PrettyOpts{Context: 1, ShowStage: true})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "[LexicalError]")
	require.Contains(t, out, "1 | int a;\n")
	require.Contains(t, out, "    ^~~~~\n")
}

func TestPrettyWithoutPosition(t *testing.T) {
	d := diag.Diagnostic{Stage: stage.Semantic, Severity: diag.SevError, Code: diag.InternalAnalyzer, Message: "boom"}
	var buf bytes.Buffer
	require.NoError(t, diagfmt.Pretty(&buf, []diag.Diagnostic{d}, nil, diagfmt.PrettyOpts{}))
	require.Equal(t, "<buffer>: ERROR INT0001: boom\n", buf.String())
}

func TestSummary(t *testing.T) {
	ds := []diag.Diagnostic{lexDiag(), {Severity: diag.SevWarning}, {Severity: diag.SevWarning}}
	require.Equal(t, "1 error, 2 warnings", diagfmt.Summary(ds))
	require.Equal(t, "0 errors, 0 warnings", diagfmt.Summary(nil))
}

func TestDiagnosticsJSON(t *testing.T) {
	file := source.NewVirtual("t.cl", badSrc)
	second := lexDiag()
	second.Row, second.Column = 3, 1
	ds := []diag.Diagnostic{lexDiag(), second}

	out := diagfmt.BuildDiagnosticsOutput(ds, file, diagfmt.JSONOpts{Max: 1})
	require.Equal(t, 1, out.Count)
	got := out.Diagnostics[0]
	require.Equal(t, "lexical", got.Stage)
	require.Equal(t, "LexicalError", got.Kind)
	require.Equal(t, "ERROR", got.Severity)
	require.Equal(t, "LEX1001", got.Code)
	require.Equal(t, diagfmt.LocationJSON{File: "t.cl", StartByte: 13, EndByte: 14, Row: 2, Column: 7}, got.Location)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.JSON(&buf, ds, file, diagfmt.JSONOpts{}))
	var decoded diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 2, decoded.Count)
}

func TestParseFormat(t *testing.T) {
	f, err := diagfmt.ParseFormat("", diagfmt.FormatPretty, diagfmt.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, diagfmt.FormatPretty, f)

	f, err = diagfmt.ParseFormat(" JSON ", diagfmt.FormatPretty, diagfmt.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, diagfmt.FormatJSON, f)

	_, err = diagfmt.ParseFormat("msgpack", diagfmt.FormatPretty, diagfmt.FormatJSON)
	require.ErrorContains(t, err, "pretty|json")
}

func TestTokens(t *testing.T) {
	file := source.NewVirtual("t.cl", "int a;")
	toks := lexer.Tokenize(file, lexer.Options{})

	out := diagfmt.BuildTokensOutput(toks)
	require.Len(t, out, 4)
	require.Equal(t, "a", out[1].Text)
	require.Equal(t, 1, out[1].Row)
	require.Equal(t, 5, out[1].Column)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&buf, toks, file))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], `"a" at 1:5-1:6`)
}

func runSession(t *testing.T, src string) *pipeline.Session {
	t.Helper()
	opts := driver.DefaultOptions()
	opts.Input = "41"
	sess, err := driver.NewSession(opts)
	require.NoError(t, err)
	sess.EditText(src)
	_, err = sess.RunThrough(context.Background(), stage.Execution)
	require.NoError(t, err)
	return sess
}

func TestTreeAndSymbols(t *testing.T) {
	sess := runSession(t, "int a;\ncin a;\ncout a + 1;\n")
	snap := sess.State()

	tree, ok := snap.Result(stage.Syntax).Artifact.(*ast.Tree)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTreeJSON(&buf, tree))
	var decoded diagfmt.NodeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Empty(t, cmp.Diff(diagfmt.BuildTreeOutput(tree.Root), decoded))

	buf.Reset()
	require.NoError(t, diagfmt.FormatTreePretty(&buf, tree))
	require.Equal(t, ast.Dump(tree.Root), buf.String())

	annotated, ok := snap.Result(stage.Semantic).Artifact.(*sema.Tree)
	require.True(t, ok)
	syms := diagfmt.BuildSymbolsOutput(annotated.Symbols)
	require.Len(t, syms, 1)
	require.Equal(t, "a", syms[0].Name)
	require.Zero(t, syms[0].Loc)

	buf.Reset()
	require.NoError(t, diagfmt.FormatSymbolsPretty(&buf, annotated.Symbols))
	require.True(t, strings.HasPrefix(buf.String(), "NAME"))
	require.Contains(t, buf.String(), "\na ")

	buf.Reset()
	require.NoError(t, diagfmt.FormatTreePretty(&buf, nil))
	require.Equal(t, "<empty tree>\n", buf.String())
}

func TestSnapshotPayload(t *testing.T) {
	src := "int a;\ncin a;\ncout a + 1;\n"
	sess := runSession(t, src)
	snap := sess.State()
	file := source.NewVirtual("prog.cl", src)

	payload := diagfmt.BuildSnapshot("prog.cl", sess.ID(), snap, file, nil, nil)
	require.Equal(t, len(src), payload.Buffer.Bytes)
	require.Equal(t, snap.Buffer.Generation, payload.Buffer.Generation)
	require.Len(t, payload.Stages, stage.Count)
	require.Empty(t, payload.Outcome)

	exec := payload.Stages[stage.Execution]
	require.Equal(t, "execution", exec.Stage)
	require.Equal(t, "succeeded", exec.Status)
	require.NotNil(t, exec.Artifact)
	require.Equal(t, "42\n", exec.Artifact.Output)
	require.Positive(t, exec.Artifact.Steps)

	lex := payload.Stages[stage.Lexical].Artifact
	require.Equal(t, "tokens", lex.Kind)
	require.Positive(t, lex.Tokens)
	require.Equal(t, 1, payload.Stages[stage.Semantic].Artifact.Symbols)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.EncodeSnapshot(&buf, payload, diagfmt.FormatMsgpack))
	var decoded diagfmt.SnapshotPayload
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))
	require.Empty(t, cmp.Diff(payload, decoded, cmpopts.EquateEmpty()))

	require.Error(t, diagfmt.EncodeSnapshot(&buf, payload, diagfmt.Format("xml")))
}

func TestSummarizeArtifactUnknown(t *testing.T) {
	require.Nil(t, diagfmt.SummarizeArtifact(nil))
	require.Nil(t, diagfmt.SummarizeArtifact(42))
	require.Nil(t, diagfmt.SummarizeArtifact((*ast.Tree)(nil)))
}
