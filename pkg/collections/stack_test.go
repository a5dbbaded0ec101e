package collections

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStack(t *testing.T) {
	var s Stack[string]
	if !s.IsEmpty() {
		t.Fatal("zero value should be empty")
	}
	if _, ok := s.Pop(); ok {
		t.Error("pop of empty stack should fail")
	}
	if _, ok := s.Peek(); ok {
		t.Error("peek of empty stack should fail")
	}

	s.Push("a")
	s.Push("b")
	s.Push("c")
	if s.Len() != 3 {
		t.Errorf("len: want 3, got %d", s.Len())
	}
	if top, _ := s.Peek(); top != "c" {
		t.Errorf("peek: want c, got %q", top)
	}

	var got []string
	for !s.IsEmpty() {
		x, _ := s.Pop()
		got = append(got, x)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
