package driver

import (
	"fmt"

	"fortio.org/safecast"

	"compilab/internal/pipeline"
	"compilab/internal/trace"
	"compilab/internal/vm"
)

// Options configures the reference analyzers and the sessions built on them.
type Options struct {
	Name           string // имя буфера в диагностиках
	MaxDiagnostics int    // 0 = без ограничения
	Input          string // stdin программы для cin/read
	MaxSteps       int
	Policy         pipeline.Policy // нулевое значение останавливает каскад на любой диагностике
	Tracer         trace.Tracer
	Observers      []pipeline.Observer
	Jobs           int // параллелизм CheckFiles, 0 = GOMAXPROCS
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Name:           "<buffer>",
		MaxDiagnostics: 100,
		MaxSteps:       vm.DefaultMaxSteps,
		Policy:         pipeline.DefaultPolicy(),
		Tracer:         trace.Nop,
	}
}

func (o Options) name() string {
	if o.Name == "" {
		return "<buffer>"
	}
	return o.Name
}

func (o Options) maxErrors() (uint, error) {
	if o.MaxDiagnostics <= 0 {
		return 0, nil
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0, fmt.Errorf("max diagnostics: %w", err)
	}
	return n, nil
}
