package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/ast"
	"compilab/internal/diagfmt"
	"compilab/internal/stage"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tiny",
	Short: "Parse a tiny source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr, diagfmt.FormatPretty, diagfmt.FormatJSON)
	if err != nil {
		return err
	}

	s, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := analyze(cmd, s, args[0], stage.Syntax)
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), s, os.Stderr, res); err != nil {
		return err
	}

	// при упавшем лексере дерева нет
	tree, _ := res.Snapshot.Result(stage.Syntax).Artifact.(*ast.Tree)
	if tree != nil {
		switch format {
		case diagfmt.FormatJSON:
			err = diagfmt.FormatTreeJSON(cmd.OutOrStdout(), tree)
		default:
			err = diagfmt.FormatTreePretty(cmd.OutOrStdout(), tree)
		}
		if err != nil {
			return err
		}
	}
	printTimings(cmd.ErrOrStderr(), s)
	return finish(cmd, s, res.Failed())
}
