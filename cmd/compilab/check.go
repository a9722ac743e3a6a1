package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/diagfmt"
	"compilab/internal/driver"
	"compilab/internal/sema"
	"compilab/internal/stage"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.tiny...",
	Short: "Run lexical, syntax and semantic analysis on one or more files",
	Long:  `Check analyses every file in its own session through the semantic stage, several files in parallel`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max files analysed in parallel (0=auto)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	checkCmd.Flags().Bool("symbols", false, "print the symbol table of every file that passed")
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr, diagfmt.FormatPretty, diagfmt.FormatJSON, diagfmt.FormatMsgpack)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showSymbols, err := cmd.Flags().GetBool("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}

	s, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	opts.Jobs = jobs
	results, err := driver.CheckFiles(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}

	out := cmd.OutOrStdout()
	if format != diagfmt.FormatPretty {
		payloads := make([]diagfmt.SnapshotPayload, 0, len(results))
		for _, res := range results {
			payloads = append(payloads, checkPayload(res))
		}
		if err := diagfmt.EncodeSnapshots(out, payloads, format); err != nil {
			return err
		}
		return finish(cmd, s, failed > 0)
	}

	for _, res := range results {
		if err := printDiagnostics(out, s, os.Stdout, res); err != nil {
			return err
		}
		if !showSymbols || res.Failed() {
			continue
		}
		if annotated, ok := res.Snapshot.Result(stage.Semantic).Artifact.(*sema.Tree); ok {
			fmt.Fprintf(out, "%s:\n", res.Path)
			if err := diagfmt.FormatSymbolsPretty(out, annotated.Symbols); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(out, "%d file(s) checked, %d failed\n", len(results), failed)
	printTimings(cmd.ErrOrStderr(), s)
	return finish(cmd, s, failed > 0)
}

func checkPayload(res driver.FileResult) diagfmt.SnapshotPayload {
	p := diagfmt.BuildSnapshot(res.Path, res.Session, res.Snapshot, res.File, &res.Report, nil)
	if res.File == nil && res.Err != nil {
		p.Error = res.Err.Error()
		p.Outcome = ""
	}
	return p
}
