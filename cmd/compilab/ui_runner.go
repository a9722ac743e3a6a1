package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"compilab/internal/driver"
	"compilab/internal/pipeline"
	"compilab/internal/stage"
	"compilab/internal/ui"
)

type analyzeOutcome struct {
	result driver.FileResult
	err    error
}

// analyzeWithUI runs the file while a Bubble Tea model renders stage
// progress. Quitting the UI early does not stop the analysis.
func analyzeWithUI(cmd *cobra.Command, s *settings, path string, through stage.Stage) (driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	done := make(chan struct{})
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		res, err := analyze(cmd, s, path, through, pipeline.ChannelObserver{Ch: events, Done: done})
		outcomeCh <- analyzeOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewStageModel(path, through, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	close(done)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
