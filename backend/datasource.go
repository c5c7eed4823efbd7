package backend

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"gioui.org/x/explorer"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"git.sr.ht/~whereswaldon/barchart/interaction"
)

type Mode uint8

const (
	ModeNone Mode = iota
	// ModeFile shows a file on disk and reloads it when it changes.
	ModeFile
	// ModeStream appends rows from a live stream as they arrive.
	ModeStream
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeFile:
		return "file"
	case ModeStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Status is a snapshot of what the datasource is showing.
type Status struct {
	Path string
	Data interaction.Dataset
	Mode Mode
	// Paused stops reloads and appended rows from replacing Data.
	Paused bool
	// Pending is set while paused if newer data is being held back.
	Pending bool
	// Revision increases every time Data changes.
	Revision uint64
	Err      error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type sourceState struct {
	status Status
	// latest is the newest data, which differs from status.Data while
	// paused.
	latest     interaction.Dataset
	watchedDir string
}

// show makes data the latest dataset and displays it unless paused.
func (s *sourceState) show(data interaction.Dataset) {
	s.latest = data
	if s.status.Paused {
		s.status.Pending = true
		return
	}
	s.status.Data = data
	s.status.Revision++
}

// Datasource loads datasets and publishes every change as a [Status].
type Datasource struct {
	logger  *log.Logger
	watcher *fsnotify.Watcher
	appCtx  context.Context
	state   RWBox[sourceState]
	// generation is bumped on every load so stale stream readers stop.
	generation atomic.Uint64

	subsLock sync.Mutex
	subs     map[chan Status]struct{}
}

// NewDatasource creates a datasource that lives until appCtx is done.
func NewDatasource(appCtx context.Context, logger *log.Logger) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		logger:  logger,
		watcher: watcher,
		appCtx:  appCtx,
		subs:    make(map[chan Status]struct{}),
	}
	go d.watch()
	return d, nil
}

// update applies f and publishes the result. Publishing happens under
// subsLock so subscribers see updates in order.
func (d *Datasource) update(f func(*sourceState)) {
	d.subsLock.Lock()
	defer d.subsLock.Unlock()
	d.state.Write(f)
	s := d.Snapshot()
	for ch := range d.subs {
		// Subscribers only care about the newest status.
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Snapshot returns the current status.
func (d *Datasource) Snapshot() Status {
	var s Status
	d.state.Read(func(st *sourceState) {
		s = st.status
	})
	return s
}

// Status streams the current status followed by every change until ctx is
// done. Slow readers skip intermediate statuses.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	ch := make(chan Status, 1)
	d.subsLock.Lock()
	d.subs[ch] = struct{}{}
	ch <- d.Snapshot()
	d.subsLock.Unlock()
	go func() {
		<-ctx.Done()
		d.subsLock.Lock()
		defer d.subsLock.Unlock()
		delete(d.subs, ch)
		close(ch)
	}()
	return ch
}

// SetPaused freezes or unfreezes the displayed data. Unpausing shows
// anything that arrived in the meantime.
func (d *Datasource) SetPaused(paused bool) {
	d.update(func(s *sourceState) {
		s.status.Paused = paused
		if !paused && s.status.Pending {
			s.status.Pending = false
			s.status.Data = s.latest
			s.status.Revision++
		}
	})
}

// LoadFromPath shows the dataset at path and reloads it whenever the file is
// written. The path "-" streams from standard input instead.
func (d *Datasource) LoadFromPath(path string) error {
	if path == "-" {
		d.LoadFromStream(os.Stdin)
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed resolving %q: %w", path, err)
	}
	d.generation.Add(1)
	data, loadErr := Load(abs)
	if loadErr != nil {
		d.logger.Error("failed loading dataset", "path", abs, "err", loadErr)
	} else {
		d.logger.Info("loaded dataset", "path", abs, "points", data.Len())
	}
	dir := filepath.Dir(abs)
	var watchErr error
	d.update(func(s *sourceState) {
		if s.watchedDir != dir {
			if s.watchedDir != "" {
				_ = d.watcher.Remove(s.watchedDir)
				s.watchedDir = ""
			}
			// Editors often replace files, so watch the directory.
			if watchErr = d.watcher.Add(dir); watchErr == nil {
				s.watchedDir = dir
			}
		}
		s.status.Path = abs
		s.status.Mode = ModeFile
		s.status.Err = errors.Join(loadErr, watchErr)
		s.status.Pending = false
		s.latest = data
		s.status.Data = data
		s.status.Revision++
	})
	if watchErr != nil {
		d.logger.Warn("not watching dataset for changes", "dir", dir, "err", watchErr)
	}
	return loadErr
}

// LoadFromFile asks the user for a dataset.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".csv", ".txt", ".xlsx")
	if err != nil {
		return err
	}
	if f, ok := file.(interface{ Name() string }); ok {
		file.Close()
		return d.LoadFromPath(f.Name())
	}
	defer file.Close()
	data, err := Decode(file)
	d.generation.Add(1)
	d.update(func(s *sourceState) {
		s.status.Path = ""
		s.status.Mode = ModeFile
		s.status.Err = err
		s.status.Pending = false
		s.latest = data
		s.status.Data = data
		s.status.Revision++
	})
	return err
}

// LoadFromStream shows an initially empty dataset and appends each
// label,value row read from r. The stream is read until it ends or another
// dataset is loaded.
func (d *Datasource) LoadFromStream(r io.ReadCloser) {
	gen := d.generation.Add(1)
	d.update(func(s *sourceState) {
		s.status.Path = "-"
		s.status.Mode = ModeStream
		s.status.Err = nil
		s.status.Pending = false
		s.latest = interaction.Dataset{}
		s.status.Data = s.latest
		s.status.Revision++
	})
	go d.readStream(gen, r)
}

func (d *Datasource) readStream(gen uint64, r io.ReadCloser) {
	defer r.Close()
	lr := NewLineReader(r)
	cr := newCSVReader(lr)
	first := true
	handle := func(rec []string) {
		if blank(rec) {
			return
		}
		p, err := parseRow(rec)
		if err != nil {
			if !first {
				d.logger.Warn("skipping row", "row", rec, "err", err)
			}
			first = false
			return
		}
		first = false
		d.update(func(s *sourceState) {
			if d.generation.Load() != gen {
				return
			}
			s.show(s.latest.Append(p))
		})
	}
	for d.generation.Load() == gen {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The last row may lack its newline.
				if rest := lr.Flush(); len(rest) > 0 {
					tail, err := newCSVReader(bytes.NewReader(rest)).ReadAll()
					if err != nil {
						d.logger.Warn("skipping unparsable row", "err", err)
					}
					for _, rec := range tail {
						handle(rec)
					}
				}
				d.logger.Info("dataset stream ended")
				return
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				d.logger.Warn("skipping unparsable row", "err", err)
				continue
			}
			d.logger.Error("failed reading dataset stream", "err", err)
			d.update(func(s *sourceState) {
				if d.generation.Load() == gen {
					s.status.Err = err
				}
			})
			return
		}
		handle(rec)
	}
}

func (d *Datasource) watch() {
	defer d.watcher.Close()
	for {
		select {
		case <-d.appCtx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			d.reload(filepath.Clean(ev.Name))
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("file watcher error", "err", err)
		}
	}
}

// reload re-reads path if it is the file currently shown. A failed reload
// keeps the previous data and reports the error.
func (d *Datasource) reload(path string) {
	current := d.Snapshot()
	if current.Mode != ModeFile || current.Path != path {
		return
	}
	gen := d.generation.Load()
	data, err := Load(path)
	if err != nil {
		// Writers often truncate before writing; the next event will
		// carry the complete file.
		d.logger.Debug("failed reloading dataset", "path", path, "err", err)
	} else {
		d.logger.Debug("reloaded dataset", "path", path, "points", data.Len())
	}
	d.update(func(s *sourceState) {
		if d.generation.Load() != gen || s.status.Path != path {
			return
		}
		s.status.Err = err
		if err == nil {
			s.show(data)
		}
	})
}
