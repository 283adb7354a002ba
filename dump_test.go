package main

import (
	"testing"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/mattn/go-runewidth"
)

func TestFormatTransitions(t *testing.T) {
	a, err := automaton.Build("ab", automaton.Options{})
	if err != nil {
		t.Fatal(err)
	}
	states := a.Describe()
	if got, want := formatTransitions(states[0].Transitions), "'a'→1 'b'→2"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got := formatTransitions(states[2].Transitions); got != "" {
		t.Errorf("want no transitions, got %q", got)
	}
	raw, err := automaton.Build("\xff月", automaton.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := formatTransitions(raw.Describe()[0].Transitions), `'\xff'→1 '月'→2`; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if got := formatLink(states[0].Link); got != "-" {
		t.Errorf("root link: want -, got %q", got)
	}
	if got := formatLink(states[1].Link); got != "0" {
		t.Errorf("want 0, got %q", got)
	}
}

func TestPreview(t *testing.T) {
	if got := preview("a\nb"); got != `a\nb` {
		t.Errorf("want escaped newline, got %q", got)
	}
	long := "上海自来水来自海上上海自来水来自海上上海自来水来自海上"
	if got := preview(long); runewidth.StringWidth(got) > previewWidth {
		t.Errorf("preview %q wider than %d", got, previewWidth)
	}
}
