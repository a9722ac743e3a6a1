package vm

import (
	"context"
	"errors"
	"strings"

	"compilab/internal/ast"
	"compilab/internal/diag"
	"compilab/internal/sema"
	"compilab/internal/symbols"
)

// DefaultMaxSteps bounds execution when Options.MaxSteps is not set.
const DefaultMaxSteps = 1_000_000

// ctx проверяется раз в pollEvery шагов
const pollEvery = 1024

// Options configures VM execution.
type Options struct {
	Input    string
	MaxSteps int
	Reporter diag.Reporter
}

// Output is the execution-stage artifact.
type Output struct {
	Text  string
	Exit  *Value // значение return, nil если программа дошла до конца
	Steps int
}

type slot struct {
	val  Value
	init bool
}

// VM holds the state of one program execution.
type VM struct {
	ctx      context.Context
	table    *symbols.Table
	mem      []slot
	input    *inputQueue
	out      strings.Builder
	steps    int
	maxSteps int
	exit     *Value
}

// New prepares an execution of the checked program.
func New(ctx context.Context, prog *sema.Tree, opts Options) *VM {
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	table := prog.Symbols
	if table == nil {
		table = symbols.NewTable(0)
	}
	return &VM{
		ctx:      ctx,
		table:    table,
		mem:      make([]slot, table.Len()),
		input:    newInputQueue(opts.Input),
		maxSteps: maxSteps,
	}
}

// Run executes the program. Runtime failures are reported through
// opts.Reporter and end execution; the partial output is still returned.
// The only returned errors come from ctx.
func Run(ctx context.Context, prog *sema.Tree, opts Options) (Output, error) {
	if prog == nil || prog.Root == nil {
		return Output{}, nil
	}
	vm := New(ctx, prog, opts)
	err := vm.block(prog.Root.Children)
	out := Output{Text: vm.out.String(), Exit: vm.exit, Steps: vm.steps}

	var rtErr *Error
	switch {
	case err == nil, errors.Is(err, errReturn):
		return out, nil
	case errors.As(err, &rtErr):
		if opts.Reporter != nil {
			opts.Reporter.Report(rtErr.Code, diag.SevError, rtErr.Span, rtErr.Message, nil)
		}
		return out, nil
	default:
		return out, err
	}
}

// step counts one unit of work and polls the context.
func (vm *VM) step(n *ast.Node) error {
	vm.steps++
	if vm.steps > vm.maxSteps {
		return runtimeErr(diag.RunStepLimit, n.Span, "step limit of %d exceeded", vm.maxSteps)
	}
	if vm.steps%pollEvery == 0 {
		if err := vm.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) lookup(id *ast.Node) (*slot, *symbols.Symbol) {
	sid, ok := vm.table.Lookup(id.Value)
	if !ok {
		return nil, nil
	}
	sym := vm.table.Get(sid)
	if sym.Loc >= len(vm.mem) {
		return nil, nil
	}
	return &vm.mem[sym.Loc], sym
}
