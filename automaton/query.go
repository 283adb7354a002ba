package automaton

// Automaton is a suffix automaton whose occurrence counts have been
// computed. It is read-only and safe for concurrent queries.
type Automaton struct {
	arena    *Arena
	n        int32
	distinct int64
}

// Occurrences returns how many times pattern occurs in the text,
// overlapping occurrences included. It returns 0 for patterns that are
// not substrings and for the empty pattern.
func (a *Automaton) Occurrences(pattern string) int {
	count, _ := a.Query(pattern)
	return count
}

// Query is Occurrences for callers holding an Automaton of unknown
// origin: a zero or released Automaton returns ErrQueryBeforeCountsComputed.
func (a *Automaton) Query(pattern string) (int, error) {
	if a == nil || a.arena == nil {
		return 0, ErrQueryBeforeCountsComputed
	}
	if pattern == "" {
		return 0, nil
	}
	s, ok := a.walk(pattern)
	if !ok {
		return 0, nil
	}
	return a.arena.Count(s), nil
}

// Contains reports whether pattern is a substring of the text.
func (a *Automaton) Contains(pattern string) bool {
	if a == nil || a.arena == nil {
		return false
	}
	_, ok := a.walk(pattern)
	return ok
}

func (a *Automaton) walk(pattern string) (StateRef, bool) {
	s := Root
	for len(pattern) > 0 {
		c, size := decodeSymbol(pattern)
		next, ok := a.arena.Next(s, c)
		if !ok {
			return None, false
		}
		s = next
		pattern = pattern[size:]
	}
	return s, true
}

// TextLength returns the number of runes in the text.
func (a *Automaton) TextLength() int {
	return int(a.n)
}

// NumStates returns 0 once the automaton is released.
func (a *Automaton) NumStates() int {
	if a.arena == nil {
		return 0
	}
	return a.arena.Len()
}

// DistinctSubstrings returns the number of distinct non-empty substrings.
func (a *Automaton) DistinctSubstrings() int64 {
	return a.distinct
}

func (a *Automaton) Repeatness() float64 {
	return repeatness(a.distinct, a.n)
}

// Describe returns nil once the automaton is released.
func (a *Automaton) Describe() []StateDescriptor {
	if a.arena == nil {
		return nil
	}
	return describe(a.arena)
}

func (a *Automaton) Verify() error {
	if a.arena == nil {
		return ErrQueryBeforeCountsComputed
	}
	return verify(a.arena, a.n)
}

// Release hands the transition maps back for reuse. The automaton must
// not be queried concurrently with, or used after, Release.
func (a *Automaton) Release() {
	if a.arena != nil {
		a.arena.Clear()
		a.arena = nil
		a.n, a.distinct = 0, 0
	}
}
