package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"compilab/internal/diagfmt"
	"compilab/internal/driver"
	"compilab/internal/observ"
	"compilab/internal/pipeline"
	"compilab/internal/prof"
	"compilab/internal/stage"
)

// prepare loads settings, profiling and tracing for a command.
func prepare(cmd *cobra.Command) (*settings, func(), error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	profiler, err := startProfiling(cmd)
	if err != nil {
		return nil, nil, err
	}
	cleanupTrace, err := setupTracing(cmd, s)
	if err != nil {
		_ = profiler.Stop()
		return nil, nil, err
	}
	return s, func() {
		cleanupTrace()
		if err := profiler.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "prof: %v\n", err)
		}
	}, nil
}

func startProfiling(cmd *cobra.Command) (*prof.Profiler, error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = root.GetString("cpuprofile")
	opts.Mem, _ = root.GetString("memprofile")
	opts.Trace, _ = root.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// analyze runs one file through the cascade in its own session.
func analyze(cmd *cobra.Command, s *settings, path string, through stage.Stage, observers ...pipeline.Observer) (driver.FileResult, error) {
	opts, err := s.driverOptions(observers...)
	if err != nil {
		return driver.FileResult{}, err
	}
	res := driver.AnalyzeFile(cmd.Context(), path, through, opts)
	if res.Err != nil {
		if res.File == nil {
			return res, fmt.Errorf("failed to load %s: %w", path, res.Err)
		}
		return res, fmt.Errorf("analysis of %s failed: %w", path, res.Err)
	}
	return res, nil
}

// printDiagnostics renders every diagnostic of res in pretty form.
func printDiagnostics(w io.Writer, s *settings, f *os.File, res driver.FileResult) error {
	ds := res.Diagnostics()
	if len(ds) == 0 {
		return nil
	}
	opts := diagfmt.PrettyOpts{
		Color:     s.useColor(f),
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
	if err := diagfmt.Pretty(w, ds, res.File, opts); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", res.Path, diagfmt.Summary(ds))
	return err
}

func printTimings(w io.Writer, s *settings) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(w, s.timer.Summary())
}

func timingsReport(s *settings) *observ.Report {
	if s.timer == nil {
		return nil
	}
	rep := s.timer.Report()
	return &rep
}

// finish maps a failed stage to exit status 1 and dumps the trace ring.
func finish(cmd *cobra.Command, s *settings, failed bool) error {
	if !failed {
		return nil
	}
	dumpTrace(cmd, s)
	return errStageFailed
}
