package name

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFqName(t *testing.T) {
	for name, tc := range map[string]struct {
		in        FqName
		parent    FqName
		short     Name
		formatted string
	}{
		"root": {
			in:        Root,
			parent:    Root,
			short:     "",
			formatted: "<root>",
		},
		"single": {
			in:        "pkg",
			parent:    Root,
			short:     "pkg",
			formatted: "pkg",
		},
		"dotted": {
			in:        "com.example.api",
			parent:    "com.example",
			short:     "api",
			formatted: "com.example.api",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.parent, tc.in.Parent()); diff != "" {
				t.Errorf("parent (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.short, tc.in.ShortName()); diff != "" {
				t.Errorf("short name (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.formatted, tc.in.String()); diff != "" {
				t.Errorf("string (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFqNameStartsWith(t *testing.T) {
	for name, tc := range map[string]struct {
		in     FqName
		prefix FqName
		want   bool
	}{
		"root prefix":    {in: "a.b", prefix: Root, want: true},
		"equal":          {in: "a.b", prefix: "a.b", want: true},
		"ancestor":       {in: "a.b.c", prefix: "a.b", want: true},
		"partial":        {in: "a.bc", prefix: "a.b", want: false},
		"longer prefix":  {in: "a", prefix: "a.b", want: false},
		"unrelated":      {in: "x.y", prefix: "a", want: false},
		"root in prefix": {in: Root, prefix: Root, want: true},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.in.StartsWith(tc.prefix); got != tc.want {
				t.Errorf("%q.StartsWith(%q): want %t, got %t", tc.in, tc.prefix, tc.want, got)
			}
		})
	}
}

func TestParseFqName(t *testing.T) {
	if got := ParseFqName(".a.b."); got != "a.b" {
		t.Errorf("want a.b, got %q", got)
	}
	if got := Root.Child("a").Child("b"); got != "a.b" {
		t.Errorf("want a.b, got %q", got)
	}
}
