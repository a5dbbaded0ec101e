package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"

	"github.com/stackb/fir-resolve/pkg/fir"
	"github.com/stackb/fir-resolve/pkg/metrics"
	"github.com/stackb/fir-resolve/pkg/provider"
	"github.com/stackb/fir-resolve/pkg/report"
	"github.com/stackb/fir-resolve/pkg/treeload"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger of the session and of the providers it builds.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithReporter sets the reporter receiving per-file and per-iteration
// messages.
func WithReporter(reporter *report.Reporter) Option {
	return func(s *Session) {
		s.reporter = reporter
	}
}

// WithProgress enables progress output.
func WithProgress(output mobyprogress.Output) Option {
	return func(s *Session) {
		s.progress = output
	}
}

// Session owns the current provider snapshot of a set of tree files.
// Readers obtain the snapshot with Provider and never observe one that is
// still being written.
type Session struct {
	logger   zerolog.Logger
	reporter *report.Reporter
	progress mobyprogress.Output
	loader   *treeload.Loader

	// writeMu serializes Load and Update.
	writeMu sync.Mutex
	current atomic.Pointer[provider.FirProvider]
}

// NewSession constructs a session with an empty provider.
func NewSession(options ...Option) *Session {
	s := &Session{
		logger:   zerolog.Nop(),
		reporter: report.NewReporter(),
	}
	for _, option := range options {
		option(s)
	}
	s.loader = treeload.NewLoader(treeload.WithLogger(s.logger))
	s.current.Store(provider.NewFirProvider(provider.WithLogger(s.logger)))
	return s
}

// Provider returns the current snapshot.
func (s *Session) Provider() *provider.FirProvider {
	return s.current.Load()
}

// Load parses filenames and replaces the current snapshot with a fresh
// provider holding exactly those files.  On error the current snapshot is
// kept.
func (s *Session) Load(ctx context.Context, filenames []string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	files, err := s.parse(ctx, filenames)
	s.reporter.ReportIteration(filenames, err)
	if err != nil {
		return err
	}

	next := provider.NewFirProvider(provider.WithLogger(s.logger))
	for i, file := range files {
		next.RecordFile(file)
		s.writeProgress(i+1, len(files))
		s.reporter.Report(func() string {
			return fmt.Sprintf("recorded %v", file)
		})
	}
	if err := next.CheckConsistency(); err != nil {
		return err
	}

	s.swap(next)
	return nil
}

// Update re-parses the given files.  Files that no longer exist are removed
// from the index.  The new snapshot is derived from the current one with
// provider.Rebuild; on error the current snapshot is kept.
func (s *Session) Update(ctx context.Context, filenames []string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var existing, removed []string
	for _, filename := range filenames {
		if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
			removed = append(removed, filename)
			continue
		}
		existing = append(existing, filename)
	}

	changed, err := s.parse(ctx, existing)
	s.reporter.ReportIteration(filenames, err)
	if err != nil {
		return err
	}

	for _, filename := range removed {
		s.reporter.Reportf("removed %s", filename)
	}

	next := s.Provider().Rebuild(changed, removed)
	if err := next.CheckConsistency(); err != nil {
		return err
	}

	s.swap(next)
	s.logger.Info().
		Int("changed", len(changed)).
		Int("removed", len(removed)).
		Msg("index updated")
	return nil
}

func (s *Session) swap(next *provider.FirProvider) {
	s.current.Store(next)
	stats := next.Stats()
	metrics.IndexedFiles.Set(float64(stats.Files))
	s.logger.Debug().
		Int("files", stats.Files).
		Int("packages", stats.Packages).
		Int("classifiers", stats.Classifiers).
		Int("callables", stats.Callables).
		Msg("swapped provider snapshot")
}

func (s *Session) parse(ctx context.Context, filenames []string) ([]*fir.File, error) {
	files := make([]*fir.File, 0, len(filenames))
	var errs []error
	for _, filename := range filenames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := s.loader.LoadFile(filename)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, file)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return files, nil
}

func (s *Session) writeProgress(current, total int) {
	if s.progress == nil {
		return
	}
	s.progress.WriteProgress(mobyprogress.Progress{
		ID:         "index",
		Action:     "indexing",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "files",
		LastUpdate: current == total,
	})
}
