package driver

import (
	"context"
	"fmt"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/lexer"
	"compilab/internal/parser"
	"compilab/internal/pipeline"
	"compilab/internal/sema"
	"compilab/internal/source"
	"compilab/internal/stage"
	"compilab/internal/token"
	"compilab/internal/vm"
)

// Artifact kinds produced by the reference analyzers.
const (
	ArtifactTokens        = "tokens"
	ArtifactSyntaxTree    = "syntax-tree"
	ArtifactAnnotatedTree = "annotated-tree"
	ArtifactOutput        = "output"
)

// NewRegistry binds the lexer, parser, checker and interpreter to their stages.
func NewRegistry(opts Options) (*pipeline.Registry, error) {
	maxErrors, err := opts.maxErrors()
	if err != nil {
		return nil, err
	}

	reg := pipeline.NewRegistry()
	entries := []struct {
		st       stage.Stage
		name     string
		artifact string
		a        pipeline.Analyzer
	}{
		{stage.Lexical, "lexer", ArtifactTokens, pipeline.Bind(lexStage(opts))},
		{stage.Syntax, "parser", ArtifactSyntaxTree, pipeline.Bind(parseStage(opts, maxErrors))},
		{stage.Semantic, "sema", ArtifactAnnotatedTree, pipeline.Bind(semaStage(opts))},
		{stage.Execution, "vm", ArtifactOutput, pipeline.Bind(runStage(opts))},
	}
	for _, e := range entries {
		if err := reg.Register(e.st, e.name, e.artifact, e.a); err != nil {
			return nil, fmt.Errorf("driver: %w", err)
		}
	}
	return reg, nil
}

func newReporter(opts Options, file *source.File) (*diag.Bag, diag.Reporter) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	return bag, diag.NewDedupReporter(diag.BagReporter{Bag: bag, File: file})
}

func lexStage(opts Options) func(context.Context, string) ([]token.Token, []diag.Diagnostic, error) {
	return func(_ context.Context, text string) ([]token.Token, []diag.Diagnostic, error) {
		file := source.NewVirtual(opts.name(), text)
		bag, rep := newReporter(opts, file)
		toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
		return toks, bag.Items(), nil
	}
}

// позиции parser/sema/vm разрешает оркестратор по тексту снапшота
func parseStage(opts Options, maxErrors uint) func(context.Context, []token.Token) (*ast.Tree, []diag.Diagnostic, error) {
	return func(_ context.Context, toks []token.Token) (*ast.Tree, []diag.Diagnostic, error) {
		bag, rep := newReporter(opts, nil)
		tree := parser.ParseTokens(toks, parser.Options{Reporter: rep, MaxErrors: maxErrors})
		return tree, bag.Items(), nil
	}
}

func semaStage(opts Options) func(context.Context, *ast.Tree) (*sema.Tree, []diag.Diagnostic, error) {
	return func(_ context.Context, tree *ast.Tree) (*sema.Tree, []diag.Diagnostic, error) {
		if tree == nil {
			return nil, nil, fmt.Errorf("sema: nil syntax tree")
		}
		bag, rep := newReporter(opts, nil)
		checked := sema.Check(tree, sema.Options{Reporter: rep})
		return checked, bag.Items(), nil
	}
}

func runStage(opts Options) func(context.Context, *sema.Tree) (vm.Output, []diag.Diagnostic, error) {
	return func(ctx context.Context, prog *sema.Tree) (vm.Output, []diag.Diagnostic, error) {
		bag, rep := newReporter(opts, nil)
		out, err := vm.Run(ctx, prog, vm.Options{
			Input:    opts.Input,
			MaxSteps: opts.MaxSteps,
			Reporter: rep,
		})
		if err != nil {
			return out, nil, err
		}
		return out, bag.Items(), nil
	}
}
