package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"compilab/internal/trace"
)

// setupTracing builds the tracer from the merged settings, attaches it to the
// command context and returns the cleanup to defer.
func setupTracing(cmd *cobra.Command, s *settings) (func(), error) {
	cfg, err := s.cfg.TracerConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid trace configuration: %w", err)
	}
	heartbeatInterval, err := cmd.Root().PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	if cfg.Level == trace.LevelOff {
		s.tracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	return func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

// dumpTrace prints the ring buffer to stderr; called when a stage failed.
func dumpTrace(cmd *cobra.Command, s *settings) {
	ring := trace.RingOf(s.tracer)
	if ring == nil {
		return
	}
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "--- trace (most recent events) ---")
	if n := ring.Dropped(); n > 0 {
		fmt.Fprintf(w, "(%d earlier events dropped)\n", n)
	}
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
