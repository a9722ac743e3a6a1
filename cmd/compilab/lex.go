package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/diagfmt"
	"compilab/internal/stage"
	"compilab/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] file.tiny",
	Short: "Tokenize a tiny source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runLex(cmd *cobra.Command, args []string) error {
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

	res, err := analyze(cmd, s, args[0], stage.Lexical)
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), s, os.Stderr, res); err != nil {
		return err
	}

	lexical := res.Snapshot.Result(stage.Lexical)
	toks, _ := lexical.Artifact.([]token.Token)
	switch format {
	case diagfmt.FormatJSON:
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, res.File)
	}
	if err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), s)
	return finish(cmd, s, res.Failed())
}
