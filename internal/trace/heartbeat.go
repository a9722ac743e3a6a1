package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat шлёт KindHeartbeat с заданным интервалом. Завис анализатор -
// в трейсе видны heartbeat'ы без парного конца стадии.
type Heartbeat struct {
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// StartHeartbeat запускает горутину; nil, если трассировка выключена.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go h.loop(tracer, interval, time.Now())
	return h
}

func (h *Heartbeat) loop(tracer Tracer, interval time.Duration, started time.Time) {
	defer close(h.finished)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	gid := getGoroutineID()
	for beat := 1; ; beat++ {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeSession,
				GID:    gid,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d +%s", beat, now.Sub(started).Round(time.Millisecond)),
			})
		}
	}
}

// Stop останавливает горутину и дожидается её выхода. Повторный вызов безопасен.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.done) })
	<-h.finished
}
