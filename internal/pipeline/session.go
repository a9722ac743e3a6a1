package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"compilab/internal/stage"
	"compilab/internal/trace"
)

// claim marks a stage as executing for one generation by one run.
type claim struct {
	gen uint64
	run uint64 // 0 = free
}

type observerEntry struct {
	id int
	o  Observer
}

// Session is the view-facing facade over one buffer and its pipeline state.
// All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex // guards everything below except notifyMu
	notifyMu sync.Mutex // serializes observer delivery

	id       uuid.UUID
	name     string
	buf      *SourceBuffer
	state    *State
	registry *Registry
	policy   Policy
	tracer   trace.Tracer

	nextRun uint64
	cancels map[uint64]context.CancelFunc
	claims  [stage.Count]claim

	observers []observerEntry
	nextObs   int
	pending   []Event
}

type Option func(*Session)

// WithPolicy sets the cascade policy.
func WithPolicy(p Policy) Option {
	return func(s *Session) { s.policy = p }
}

// WithTracer attaches a tracer for session, run and stage events.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithName sets the file name used when resolving diagnostic positions.
func WithName(name string) Option {
	return func(s *Session) { s.name = name }
}

// NewSession creates a session with an empty buffer and all stages Pending.
func NewSession(reg *Registry, opts ...Option) *Session {
	if reg == nil {
		reg = NewRegistry()
	}
	s := &Session{
		id:       uuid.New(),
		name:     "<buffer>",
		buf:      NewSourceBuffer(),
		state:    NewState(),
		registry: reg,
		policy:   DefaultPolicy(),
		tracer:   trace.Nop,
		cancels:  make(map[uint64]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string { return s.id.String() }

func (s *Session) Name() string { return s.name }

func (s *Session) Policy() Policy { return s.policy }

// EditText replaces the buffer text and invalidates every stage. In-flight
// runs are cancelled and their results will be discarded.
func (s *Session) EditText(text string) uint64 {
	s.mu.Lock()
	gen := s.buf.SetText(text)
	s.cancelRunsLocked()
	s.state.invalidateAll(gen)
	s.emitLocked(Event{Kind: EventInvalidated, Generation: gen})
	s.mu.Unlock()

	trace.Point(s.tracer, trace.ScopeSession, "edit", 0, "",
		map[string]string{"generation": strconv.FormatUint(gen, 10), "bytes": strconv.Itoa(len(text))})
	s.flush()
	return gen
}

// SetCursor records the cursor position; it has no pipeline effect.
func (s *Session) SetCursor(row, col int) {
	s.mu.Lock()
	s.buf.SetCursor(row, col)
	s.mu.Unlock()
}

// MarkSaved clears the dirty flag; it has no pipeline effect.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	s.buf.MarkSaved()
	gen := s.buf.Generation()
	s.emitLocked(Event{Kind: EventSaved, Generation: gen})
	s.mu.Unlock()

	trace.Point(s.tracer, trace.ScopeSession, "saved", 0, "", nil)
	s.flush()
}

// NewFile empties the buffer and resets every stage to its initial state.
func (s *Session) NewFile() {
	s.mu.Lock()
	gen := s.buf.reset()
	s.cancelRunsLocked()
	s.state.reset()
	s.emitLocked(Event{Kind: EventReset, Generation: gen})
	s.mu.Unlock()

	trace.Point(s.tracer, trace.ScopeSession, "reset", 0, "",
		map[string]string{"generation": strconv.FormatUint(gen, 10)})
	s.flush()
}

// State returns the buffer and all stage results atomically.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Buffer: s.buf.Snapshot(), Results: s.state.Results()}
}

// Result returns a copy of one stage's result.
func (s *Session) Result(st stage.Stage) (StageResult, error) {
	if !st.Valid() {
		return StageResult{}, fmt.Errorf("%w: %v", ErrUnknownStage, st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Result(st), nil
}

func (s *Session) Buffer() BufferSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Snapshot()
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Generation()
}

// Subscribe registers o and returns a function that removes it.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observerEntry{id: id, o: o})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.observers = slices.DeleteFunc(s.observers, func(e observerEntry) bool { return e.id == id })
		})
	}
}

func (s *Session) cancelRunsLocked() {
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
}

func (s *Session) emitLocked(ev Event) {
	ev.Session = s.id.String()
	s.pending = append(s.pending, ev)
}

// flush delivers queued events outside s.mu, in the order they were queued.
func (s *Session) flush() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for {
		s.mu.Lock()
		evs := s.pending
		s.pending = nil
		obs := make([]Observer, 0, len(s.observers))
		for _, e := range s.observers {
			obs = append(obs, e.o)
		}
		s.mu.Unlock()

		if len(evs) == 0 {
			return
		}
		for _, ev := range evs {
			for _, o := range obs {
				o.OnEvent(ev)
			}
		}
	}
}
