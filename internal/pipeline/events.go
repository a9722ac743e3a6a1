package pipeline

import (
	"fmt"
	"time"

	"compilab/internal/stage"
)

type EventKind uint8

const (
	// EventInvalidated: the text changed, every stage is Pending.
	EventInvalidated EventKind = iota + 1
	EventStageStarted
	EventStageFinished
	// EventDiscarded: a stage finished for a generation that is no longer current.
	EventDiscarded
	EventReset
	EventSaved
)

func (k EventKind) String() string {
	switch k {
	case EventInvalidated:
		return "invalidated"
	case EventStageStarted:
		return "stage-started"
	case EventStageFinished:
		return "stage-finished"
	case EventDiscarded:
		return "discarded"
	case EventReset:
		return "reset"
	case EventSaved:
		return "saved"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event describes a state change of a session. Stage and Status are
// meaningful for stage events only.
type Event struct {
	Kind        EventKind
	Session     string
	Stage       stage.Stage
	Status      Status
	Generation  uint64
	Elapsed     time.Duration
	Diagnostics int
}

// Observer receives session events. OnEvent is called synchronously and
// serially; it must not call back into the session.
type Observer interface {
	OnEvent(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

// ChannelObserver forwards events into a channel. When Done is set and
// closed, pending sends are dropped instead of blocking.
type ChannelObserver struct {
	Ch   chan<- Event
	Done <-chan struct{}
}

func (o ChannelObserver) OnEvent(ev Event) {
	if o.Ch == nil {
		return
	}
	if o.Done == nil {
		o.Ch <- ev
		return
	}
	select {
	case o.Ch <- ev:
	case <-o.Done:
	}
}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnEvent(ev Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(ev)
		}
	}
}
