package automaton

// Extend appends c to the ingested text and returns the new last state.
//
// If the arena cannot fit the one or two states c needs, Extend returns a
// *CapacityError and the automaton is left untouched.
func (b *Builder) Extend(c rune) (StateRef, error) {
	if b.sealed {
		return None, ErrSealed
	}
	a := b.arena
	if need := b.statesNeeded(c); a.Free() < need {
		return None, &CapacityError{MaxStates: a.maxStates, Needed: a.Len() + need}
	}

	cur := b.alloc()
	a.SetLength(cur, a.Length(b.last)+1)
	a.SetCount(cur, 1)

	p := b.last
	for ; p != None; p = a.Link(p) {
		if _, ok := a.Next(p, c); ok {
			break
		}
		a.SetNext(p, c, cur)
	}

	if p == None {
		a.SetLink(cur, Root)
	} else {
		q, _ := a.Next(p, c)
		if a.Length(q) == a.Length(p)+1 {
			a.SetLink(cur, q)
		} else {
			cl := b.alloc()
			a.SetLength(cl, a.Length(p)+1)
			a.copyTransitions(cl, q)
			a.SetLink(cl, a.Link(q))
			for ; p != None; p = a.Link(p) {
				if target, ok := a.Next(p, c); !ok || target != q {
					break
				}
				a.SetNext(p, c, cl)
			}
			a.SetLink(q, cl)
			a.SetLink(cur, cl)
			b.order = append(b.order, cl)
		}
	}
	b.order = append(b.order, cur)

	b.n++
	b.distinct += int64(a.Length(cur) - a.Length(a.Link(cur)))
	b.last = cur
	return cur, nil
}

// statesNeeded walks the suffix links the way Extend will, without
// mutating anything, and reports whether c needs a clone on top of the
// new state.
func (b *Builder) statesNeeded(c rune) int {
	a := b.arena
	for p := b.last; p != None; p = a.Link(p) {
		if q, ok := a.Next(p, c); ok {
			if a.Length(q) != a.Length(p)+1 {
				return 2
			}
			return 1
		}
	}
	return 1
}
