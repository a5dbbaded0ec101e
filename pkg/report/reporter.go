// Package report fans indexing diagnostics out to interested sinks.  Message
// text is only built when some sink wants it, and at most once.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Sink consumes report messages.
type Sink interface {
	// Enabled reports whether the sink currently wants messages.
	Enabled() bool
	// Accept receives one message.
	Accept(message string)
}

// Reporter dispatches messages to its sinks.
type Reporter struct {
	sinks []Sink
	root  string
}

// NewReporter constructs a Reporter over the given sinks.
func NewReporter(sinks ...Sink) *Reporter {
	return &Reporter{sinks: sinks}
}

// RelativeTo makes ReportIteration print paths relative to root.  Paths
// outside root are printed unchanged.
func (r *Reporter) RelativeTo(root string) *Reporter {
	r.root = root
	return r
}

// Report delivers the message produced by message to every enabled sink.
// message is not called when no sink is enabled.
func (r *Reporter) Report(message func() string) {
	lazy := NewLazy(message)
	for _, sink := range r.sinks {
		if sink.Enabled() {
			sink.Accept(lazy.Get())
		}
	}
}

// Reportf is Report with a printf-style message.
func (r *Reporter) Reportf(format string, args ...any) {
	r.Report(func() string {
		return fmt.Sprintf(format, args...)
	})
}

// ReportIteration reports one indexing pass over files.
func (r *Reporter) ReportIteration(files []string, err error) {
	r.Report(func() string {
		sorted := make([]string, len(files))
		for i, file := range files {
			sorted[i] = r.relative(file)
		}
		sort.Strings(sorted)
		status := "ok"
		if err != nil {
			status = err.Error()
		}
		return fmt.Sprintf("index iteration: %s (%s)", strings.Join(sorted, ", "), status)
	})
}

func (r *Reporter) relative(path string) string {
	if r.root == "" {
		return path
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// LogSink writes messages to a zerolog logger at debug level.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink constructs a new LogSink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Enabled implements part of the Sink interface.
func (s *LogSink) Enabled() bool {
	return s.logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// Accept implements part of the Sink interface.
func (s *LogSink) Accept(message string) {
	s.logger.Debug().Msg(message)
}

// BufferSink accumulates messages, one per line.
type BufferSink struct {
	mu  sync.Mutex
	buf strings.Builder
}

// Enabled implements part of the Sink interface.
func (s *BufferSink) Enabled() bool {
	return true
}

// Accept implements part of the Sink interface.
func (s *BufferSink) Accept(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteString(message)
	s.buf.WriteRune('\n')
}

// String returns everything accepted so far.
func (s *BufferSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
