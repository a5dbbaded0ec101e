package collections

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestCollectFilesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.fir.star":              {},
		"pkg/b.fir.star":          {},
		"pkg/sub/c.fir.star":      {},
		"pkg/testdata/d.fir.star": {},
		"pkg/README.md":           {},
		"vendor/e.fir.star":       {},
	}
	for name, tc := range map[string]struct {
		include []string
		exclude []string
		want    []string
	}{
		"all": {
			include: []string{"**/*.fir.star"},
			want:    []string{"a.fir.star", "pkg/b.fir.star", "pkg/sub/c.fir.star", "pkg/testdata/d.fir.star", "vendor/e.fir.star"},
		},
		"exclude": {
			include: []string{"**/*.fir.star"},
			exclude: []string{"vendor/**", "**/testdata/**"},
			want:    []string{"a.fir.star", "pkg/b.fir.star", "pkg/sub/c.fir.star"},
		},
		"overlapping includes": {
			include: []string{"pkg/*.fir.star", "pkg/**/*.fir.star"},
			want:    []string{"pkg/b.fir.star", "pkg/sub/c.fir.star", "pkg/testdata/d.fir.star"},
		},
		"no match": {
			include: []string{"*.kt"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := CollectFilesFS(fsys, tc.include, tc.exclude)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchAny(t *testing.T) {
	if !MatchAny([]string{"*.go", "**/*.fir.star"}, "a/b/c.fir.star") {
		t.Error("want match")
	}
	if MatchAny([]string{"["}, "[") {
		t.Error("invalid pattern should not match")
	}
	if MatchAny(nil, "x") {
		t.Error("no patterns should not match")
	}
}
