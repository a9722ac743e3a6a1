package driver

import "compilab/internal/pipeline"

// NewSession returns a session wired to the reference analyzers with the
// configured observers already subscribed.
func NewSession(opts Options) (*pipeline.Session, error) {
	reg, err := NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	sopts := []pipeline.Option{
		pipeline.WithPolicy(opts.Policy),
		pipeline.WithName(opts.name()),
	}
	if opts.Tracer != nil {
		sopts = append(sopts, pipeline.WithTracer(opts.Tracer))
	}
	s := pipeline.NewSession(reg, sopts...)
	for _, o := range opts.Observers {
		if o != nil {
			s.Subscribe(o)
		}
	}
	return s, nil
}
