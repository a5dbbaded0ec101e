package report

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type disabledSink struct {
	accepted int
}

func (s *disabledSink) Enabled() bool { return false }
func (s *disabledSink) Accept(string) { s.accepted++ }

func TestReportIsLazy(t *testing.T) {
	calls := 0
	message := func() string {
		calls++
		return "hello"
	}

	disabled := &disabledSink{}
	NewReporter(disabled).Report(message)
	if calls != 0 {
		t.Errorf("message built for disabled sinks: %d calls", calls)
	}
	if disabled.accepted != 0 {
		t.Error("disabled sink accepted a message")
	}

	a, b := &BufferSink{}, &BufferSink{}
	NewReporter(a, disabled, b).Report(message)
	if calls != 1 {
		t.Errorf("want message built once, got %d", calls)
	}
	if a.String() != "hello\n" || b.String() != "hello\n" {
		t.Errorf("sinks got %q and %q", a.String(), b.String())
	}
}

func TestReportIteration(t *testing.T) {
	for name, tc := range map[string]struct {
		files []string
		err   error
		want  string
	}{
		"ok": {
			files: []string{"b.fir.star", "a.fir.star"},
			want:  "index iteration: a.fir.star, b.fir.star (ok)\n",
		},
		"error": {
			files: []string{"a.fir.star"},
			err:   errors.New("boom"),
			want:  "index iteration: a.fir.star (boom)\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			sink := &BufferSink{}
			NewReporter(sink).ReportIteration(tc.files, tc.err)
			if diff := cmp.Diff(tc.want, sink.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReportIterationRelativeTo(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "src")
	for name, tc := range map[string]struct {
		root  string
		files []string
		want  string
	}{
		"no root": {
			files: []string{filepath.Join(root, "a", "A.fir.star")},
			want:  "index iteration: " + filepath.Join(root, "a", "A.fir.star") + " (ok)\n",
		},
		"under root": {
			root:  root,
			files: []string{filepath.Join(root, "b", "B.fir.star"), filepath.Join(root, "a", "A.fir.star")},
			want:  "index iteration: a/A.fir.star, b/B.fir.star (ok)\n",
		},
		"outside root": {
			root:  root,
			files: []string{filepath.Join(string(filepath.Separator), "other", "C.fir.star")},
			want:  "index iteration: " + filepath.Join(string(filepath.Separator), "other", "C.fir.star") + " (ok)\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			sink := &BufferSink{}
			NewReporter(sink).RelativeTo(tc.root).ReportIteration(tc.files, nil)
			if diff := cmp.Diff(tc.want, sink.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReportIterationKeepsCallerOrder(t *testing.T) {
	files := []string{"b", "a"}
	NewReporter(&BufferSink{}).ReportIteration(files, nil)
	if diff := cmp.Diff([]string{"b", "a"}, files); diff != "" {
		t.Errorf("input was reordered (-want +got):\n%s", diff)
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	debug := NewLogSink(zerolog.New(&buf).Level(zerolog.DebugLevel))
	info := NewLogSink(zerolog.New(&buf).Level(zerolog.InfoLevel))

	if info.Enabled() {
		t.Error("info logger should not want debug reports")
	}
	if !debug.Enabled() {
		t.Fatal("debug logger should want reports")
	}
	NewReporter(debug, info).Reportf("recorded %d files", 2)
	if got := buf.String(); !strings.Contains(got, `"message":"recorded 2 files"`) || strings.Count(got, "\n") != 1 {
		t.Errorf("unexpected log output %q", got)
	}
}

func TestLazy(t *testing.T) {
	calls := 0
	lazy := NewLazy(func() int {
		calls++
		return 42
	})
	if calls != 0 {
		t.Fatal("computed eagerly")
	}
	if lazy.Get() != 42 || lazy.Get() != 42 {
		t.Error("wrong value")
	}
	if calls != 1 {
		t.Errorf("want 1 computation, got %d", calls)
	}
}
