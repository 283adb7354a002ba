package automaton

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvariant wraps every violation reported by Verify.
var ErrInvariant = errors.New("automaton: invariant violated")

type Transition struct {
	Symbol rune
	Target StateRef
}

// StateDescriptor is a snapshot of one state, used for dumps.
type StateDescriptor struct {
	Index       StateRef
	Length      int32
	Link        StateRef
	Count       int
	Transitions []Transition // sorted by Symbol
}

func describe(a *Arena) []StateDescriptor {
	descriptors := make([]StateDescriptor, a.Len())
	for i := range descriptors {
		ref := StateRef(i)
		next := a.Transitions(ref)
		transitions := make([]Transition, 0, len(next))
		for c, target := range next {
			transitions = append(transitions, Transition{Symbol: c, Target: target})
		}
		sort.Slice(transitions, func(i, j int) bool {
			return transitions[i].Symbol < transitions[j].Symbol
		})
		descriptors[i] = StateDescriptor{
			Index:       ref,
			Length:      a.Length(ref),
			Link:        a.Link(ref),
			Count:       a.Count(ref),
			Transitions: transitions,
		}
	}
	return descriptors
}

func verify(a *Arena, n int32) error {
	if a.Len() == 0 {
		return fmt.Errorf("%w: no root", ErrInvariant)
	}
	if a.Link(Root) != None || a.Length(Root) != 0 {
		return fmt.Errorf("%w: root has link %d and length %d", ErrInvariant, a.Link(Root), a.Length(Root))
	}
	if bound := StateBound(int(n)); a.Len() > bound {
		return fmt.Errorf("%w: %d states for %d runes, bound is %d", ErrInvariant, a.Len(), n, bound)
	}
	for i := 1; i < a.Len(); i++ {
		s := StateRef(i)
		link := a.Link(s)
		if link < 0 || int(link) >= a.Len() {
			return fmt.Errorf("%w: state %d links to %d", ErrInvariant, s, link)
		}
		if a.Length(link) >= a.Length(s) {
			return fmt.Errorf("%w: state %d (length %d) links to %d (length %d)",
				ErrInvariant, s, a.Length(s), link, a.Length(link))
		}
	}
	// Every non-root link is in range and strictly shorter, so each link
	// chain ends at the root and the links form a tree.

	reached := make([]bool, a.Len())
	reached[Root] = true
	queue := []StateRef{Root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for c, t := range a.Transitions(s) {
			if t < 0 || int(t) >= a.Len() {
				return fmt.Errorf("%w: state %d has transition %q to %d", ErrInvariant, s, c, t)
			}
			if a.Length(t) <= a.Length(s) {
				return fmt.Errorf("%w: transition %d -%q-> %d does not lengthen", ErrInvariant, s, c, t)
			}
			if !reached[t] {
				reached[t] = true
				queue = append(queue, t)
			}
		}
	}
	for i, ok := range reached {
		if !ok {
			return fmt.Errorf("%w: state %d unreachable from root", ErrInvariant, i)
		}
	}
	return nil
}
