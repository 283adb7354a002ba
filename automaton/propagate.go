package automaton

// ComputeCounts seals the builder and propagates end-position counts up
// the suffix-link tree, deepest states first. The root receives nothing,
// so the empty pattern counts 0.
//
// It may run only once; later calls return ErrPropagationAlreadyRun.
func (b *Builder) ComputeCounts() (*Automaton, error) {
	if b.sealed {
		return nil, ErrPropagationAlreadyRun
	}
	b.sealed = true

	a := b.arena
	for _, s := range sortByLengthDesc(a, b.order, a.Length(b.last)) {
		if link := a.Link(s); link != Root {
			a.AddCount(link, a.Count(s))
		}
	}
	b.order = nil

	return &Automaton{
		arena:    a,
		n:        b.n,
		distinct: b.distinct,
	}, nil
}

// sortByLengthDesc is a stable counting sort of refs by state length,
// longest first. maxLength must be at least the length of every ref.
func sortByLengthDesc(a *Arena, refs []StateRef, maxLength int32) []StateRef {
	offsets := make([]int, maxLength+1)
	for _, s := range refs {
		offsets[a.Length(s)]++
	}
	pos := 0
	for l := maxLength; l >= 0; l-- {
		n := offsets[l]
		offsets[l] = pos
		pos += n
	}
	sorted := make([]StateRef, len(refs))
	for _, s := range refs {
		l := a.Length(s)
		sorted[offsets[l]] = s
		offsets[l]++
	}
	return sorted
}
