package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"compilab/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "compilab",
	Short:         "Incremental analysis pipeline for the tiny language",
	Long:          `compilab runs lexical, syntax, semantic analysis and execution of tiny programs as a cascade of cached stages`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errStageFailed сигнализирует об упавшей стадии: диагностики уже выведены,
// остаётся только код возврата 1.
var errStageFailed = errors.New("stage failed")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-stage timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per stage (0 = unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to compilab.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("halt-on", "error", "stop the cascade on diagnostics of this severity (error|warning)")

	// Трассировка
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity in events")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	// Профилирование
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errStageFailed) {
			fmt.Fprintf(os.Stderr, "compilab: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
