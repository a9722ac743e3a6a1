package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"compilab/internal/driver"
	"compilab/internal/metrics"
	"compilab/internal/pipeline"
	"compilab/internal/source"
	"compilab/internal/stage"
	"compilab/internal/vm"
	"compilab/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] file.tiny",
	Short: "Re-run every stage whenever the file changes",
	Long:  `Watch keeps one session for the file; every save supersedes a run still in progress`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "wait this long after the last change before re-running")
	watchCmd.Flags().String("input", "", "file with the program's standard input")
	watchCmd.Flags().Int("max-steps", vm.DefaultMaxSteps, "abort execution after this many steps (0 = default)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return fmt.Errorf("failed to get metrics-addr flag: %w", err)
	}

	s, cleanup, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	opts, err := s.driverOptions(collector)
	if err != nil {
		return err
	}
	path := args[0]
	opts.Name = path
	sess, err := driver.NewSession(opts)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(collector), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(cmd.ErrOrStderr(), "metrics: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var printMu sync.Mutex
	w, err := watch.New(path, sess, watch.Options{
		Debounce: s.cfg.Watch.Debounce.Duration,
		Through:  stage.Execution,
		OnRun: func(rep pipeline.RunReport, err error) {
			collector.ObserveRun(rep)
			printMu.Lock()
			defer printMu.Unlock()
			reportWatchRun(cmd, s, path, sess, rep, err)
		},
		OnError: func(err error) {
			printMu.Lock()
			defer printMu.Unlock()
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", path)
	return w.Run(ctx)
}

func metricsMux(c *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return mux
}

// reportWatchRun prints the verdict of one run. Superseded and cancelled
// runs are skipped: a newer run reports for the current text.
func reportWatchRun(cmd *cobra.Command, s *settings, path string, sess *pipeline.Session, rep pipeline.RunReport, err error) {
	errOut := cmd.ErrOrStderr()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(errOut, "run failed: %v\n", err)
		}
		return
	}
	if rep.Outcome == pipeline.OutcomeSuperseded || rep.Outcome == pipeline.OutcomeCancelled {
		return
	}
	snap := sess.State()
	if snap.Buffer.Generation != rep.Generation {
		return
	}

	fmt.Fprintf(errOut, "[generation %d] %s in %s\n", rep.Generation, rep.Outcome, rep.Elapsed.Round(time.Microsecond))
	res := driver.FileResult{
		Path:     path,
		File:     source.NewVirtual(path, snap.Buffer.Text),
		Session:  sess.ID(),
		Snapshot: snap,
		Report:   rep,
	}
	if err := printDiagnostics(errOut, s, os.Stderr, res); err != nil {
		fmt.Fprintf(errOut, "watch: %v\n", err)
	}
	if out, ok := snap.Result(stage.Execution).Artifact.(vm.Output); ok {
		fmt.Fprint(cmd.OutOrStdout(), out.Text)
	}
	printTimings(errOut, s)
	if s.timer != nil {
		s.timer.Reset()
	}
}
