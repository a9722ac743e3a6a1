package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/diagfmt"
	"compilab/internal/driver"
	"compilab/internal/stage"
	"compilab/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.tiny",
	Short: "Analyse and execute a tiny program",
	Long:  `Run pushes the file through every stage and interprets it; cin reads from --input or [run].input`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("input", "", "file with the program's standard input")
	runCmd.Flags().Int("max-steps", vm.DefaultMaxSteps, "abort execution after this many steps (0 = default)")
	runCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	runCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

func runRun(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr, diagfmt.FormatPretty, diagfmt.FormatJSON, diagfmt.FormatMsgpack)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	s, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path := args[0]
	var res driver.FileResult
	if format == diagfmt.FormatPretty && shouldUseTUI(mode) {
		res, err = analyzeWithUI(cmd, s, path, stage.Execution)
	} else {
		res, err = analyze(cmd, s, path, stage.Execution)
	}
	if err != nil {
		return err
	}

	if format != diagfmt.FormatPretty {
		payload := diagfmt.BuildSnapshot(res.Path, res.Session, res.Snapshot, res.File, &res.Report, timingsReport(s))
		if err := diagfmt.EncodeSnapshot(cmd.OutOrStdout(), payload, format); err != nil {
			return err
		}
		return finish(cmd, s, res.Failed())
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), s, os.Stderr, res); err != nil {
		return err
	}
	// вывод программы печатается и при ошибке исполнения: это то, что успело выполниться
	if out, ok := res.Snapshot.Result(stage.Execution).Artifact.(vm.Output); ok {
		fmt.Fprint(cmd.OutOrStdout(), out.Text)
		if out.Exit != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "main returned %s\n", out.Exit)
		}
	}
	printTimings(cmd.ErrOrStderr(), s)
	return finish(cmd, s, res.Failed())
}
