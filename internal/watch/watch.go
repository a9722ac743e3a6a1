// Package watch keeps a session in sync with a file on disk.
//
// Every settled change (after the debounce window) reads the file, replaces
// the session text and starts a new run in the background. A previous run
// still in progress is superseded by the edit and discards its results.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"compilab/internal/pipeline"
	"compilab/internal/source"
	"compilab/internal/stage"
	"compilab/internal/trace"
)

const DefaultDebounce = 150 * time.Millisecond

type Options struct {
	Debounce time.Duration
	Through  stage.Stage
	// OnRun вызывается из горутины запуска после каждого RunThrough.
	OnRun func(pipeline.RunReport, error)
	// OnError получает ошибки чтения файла и watcher'а; nil - игнорировать.
	OnError func(error)
}

type Watcher struct {
	path string
	sess *pipeline.Session
	opts Options

	fsw *fsnotify.Watcher
	wg  sync.WaitGroup

	mu   sync.Mutex
	last string
	read bool
}

// New prepares a watcher for path. The parent directory is watched, so
// editors that save by rename keep working.
func New(path string, sess *pipeline.Session, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if !opts.Through.Valid() {
		return nil, fmt.Errorf("watch %s: %w", path, pipeline.ErrUnknownStage)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Watcher{path: filepath.Clean(abs), sess: sess, opts: opts, fsw: fsw}, nil
}

// Run loads the file once, then reacts to changes until ctx is done.
// It waits for launched runs before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.wg.Wait()
	defer w.fsw.Close()

	w.reload(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.opts.Debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

// reload reads the file and starts a run when the text changed.
func (w *Watcher) reload(ctx context.Context) {
	f, err := source.Load(w.path)
	if err != nil {
		// rename-save: файл может на мгновение исчезнуть
		if !errors.Is(err, os.ErrNotExist) {
			w.report(err)
		}
		return
	}
	text := string(f.Content)

	w.mu.Lock()
	if w.read && text == w.last {
		w.mu.Unlock()
		return
	}
	w.last, w.read = text, true
	w.mu.Unlock()

	gen := w.sess.EditText(text)
	w.sess.MarkSaved()
	trace.Point(trace.FromContext(ctx), trace.ScopeSession, "reload", 0, w.path,
		map[string]string{"generation": fmt.Sprint(gen)})

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		rep, err := w.sess.RunThrough(ctx, w.opts.Through)
		if w.opts.OnRun != nil {
			w.opts.OnRun(rep, err)
		}
	}()
}

func (w *Watcher) report(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}
