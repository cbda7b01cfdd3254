// Package file implements ports.AssetSource over a directory of compiled
// scripts. A locator "intro" maps to "intro.yarnc.json" (compiled program)
// and "intro.csv" (string table). Loading is asynchronous: Resolve returns
// immediately and handles transition Loading -> Loaded/Failed in the
// background, observed by polling.
package file

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Semihazah/skein/pkg/adapters/memory"
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/program"
	"github.com/fsnotify/fsnotify"
)

// File name suffixes for the two asset kinds of a locator.
const (
	ProgramSuffix = ".yarnc.json"
	TableSuffix   = ".csv"
)

// Source loads script assets from a directory.
type Source struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]memory.Entry
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) { s.logger = logger }
}

// NewSource creates a source rooted at dir.
func NewSource(dir string, opts ...Option) *Source {
	s := &Source{
		dir:   dir,
		cache: make(map[string]memory.Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Resolve implements ports.AssetSource. The first resolution of a locator
// kicks a background load; later resolutions return the same handles.
func (s *Source) Resolve(locator string) (ports.ProgramHandle, ports.TableHandle) {
	s.mu.Lock()
	e, ok := s.cache[locator]
	if !ok {
		e = memory.Entry{Program: memory.NewProgramHandle(), Table: memory.NewTableHandle()}
		s.cache[locator] = e
		go s.load(locator, e)
	}
	s.mu.Unlock()
	return e.Program, e.Table
}

func (s *Source) load(locator string, e memory.Entry) {
	e.Program.SetLoading()
	e.Table.SetLoading()

	progPath := filepath.Join(s.dir, locator+ProgramSuffix)
	if p, err := loadProgram(progPath); err != nil {
		s.logger.Error("loading program asset", "locator", locator, "path", progPath, "error", err)
		e.Program.SetFailed(err)
	} else {
		e.Program.SetLoaded(p)
	}

	tablePath := filepath.Join(s.dir, locator+TableSuffix)
	if t, err := loadTable(tablePath); err != nil {
		s.logger.Error("loading string table asset", "locator", locator, "path", tablePath, "error", err)
		e.Table.SetFailed(err)
	} else {
		e.Table.SetLoaded(t)
	}
}

// Watch emits the locator of any cached asset whose backing file changes.
// The channel closes when done is closed or the watcher fails. Hosts use it
// for development-time hot reload: a changed locator should be re-enqueued
// after Invalidate.
func (s *Source) Watch(done <-chan struct{}) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				locator, ok := locatorFor(filepath.Base(ev.Name))
				if !ok {
					continue
				}
				select {
				case out <- locator:
				case <-done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("asset watcher error", "error", err)
			}
		}
	}()
	return out, nil
}

// Invalidate drops the cached handles for locator so the next Resolve
// reloads from disk.
func (s *Source) Invalidate(locator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, locator)
}

func locatorFor(name string) (string, bool) {
	if strings.HasSuffix(name, ProgramSuffix) {
		return strings.TrimSuffix(name, ProgramSuffix), true
	}
	if strings.HasSuffix(name, TableSuffix) {
		return strings.TrimSuffix(name, TableSuffix), true
	}
	return "", false
}

func loadProgram(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return program.Decode(f)
}

func loadTable(path string) (*lines.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return lines.ReadTable(f)
}
