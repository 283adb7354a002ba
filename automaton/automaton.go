// Package automaton builds suffix automata and answers substring
// occurrence counts over them.
//
// A Builder ingests the text one rune at a time and is the only thing
// that mutates states. ComputeCounts seals the Builder and hands back an
// Automaton, which is read-only: once obtained it may be queried from any
// number of goroutines, as long as nothing extends the Builder again
// (single writer, then multiple readers; no locking is done here).
package automaton

import "unicode/utf8"

type Options struct {
	// MaxStates bounds the number of states, root included.
	// Build derives DefaultMaxStates from the text length when it is 0;
	// NewBuilder leaves the arena unbounded (math.MaxInt32 states) when it
	// is 0 or less.
	MaxStates int
}

// DefaultMaxStates is the capacity Build uses for a text of n runes.
func DefaultMaxStates(n int) int {
	return max(2*n, 2)
}

// StateBound is the most states a text of n runes can produce.
func StateBound(n int) int {
	if n <= 1 {
		return n + 1
	}
	return 2*n - 1
}

// Builder is the mutable, ingesting side of a suffix automaton.
type Builder struct {
	arena    *Arena
	last     StateRef   // 当前插入的字符对应的节点(终止点)
	order    []StateRef // every non-root state, in creation order
	n        int32      // 当前字符串长度
	distinct int64      // 不同子串数
	sealed   bool
}

func NewBuilder(opts Options) *Builder {
	b := &Builder{
		arena: NewArena(opts.MaxStates),
		last:  Root,
	}
	b.alloc()
	return b
}

// Build ingests text and computes occurrence counts. It fails with an
// error matching ErrCapacityExceeded as soon as a rune would need more
// than opts.MaxStates states.
func Build(text string, opts Options) (*Automaton, error) {
	n := utf8.RuneCountInString(text)
	if opts.MaxStates == 0 {
		opts.MaxStates = DefaultMaxStates(n)
	}
	b := NewBuilder(opts)
	if err := b.ExtendString(text); err != nil {
		b.arena.Clear()
		return nil, err
	}
	return b.ComputeCounts()
}

// ExtendString extends the automaton with every symbol of s, in order.
func (b *Builder) ExtendString(s string) error {
	for len(s) > 0 {
		c, size := decodeSymbol(s)
		if _, err := b.Extend(c); err != nil {
			return err
		}
		s = s[size:]
	}
	return nil
}

// Arena exposes the states of the automaton under construction.
func (b *Builder) Arena() *Arena {
	return b.arena
}

// Last returns the state representing the whole text ingested so far.
func (b *Builder) Last() StateRef {
	return b.last
}

// Len returns the number of runes ingested so far.
func (b *Builder) Len() int {
	return int(b.n)
}

func (b *Builder) NumStates() int {
	return b.arena.Len()
}

// DistinctSubstrings returns the number of distinct non-empty substrings.
func (b *Builder) DistinctSubstrings() int64 {
	return b.distinct
}

// Repeatness is the ratio of distinct substrings to all n(n+1)/2
// substrings. Lower means more repetitive; an empty text reports 1.
func (b *Builder) Repeatness() float64 {
	return repeatness(b.distinct, b.n)
}

func (b *Builder) Describe() []StateDescriptor {
	return describe(b.arena)
}

// Verify checks the structural invariants of the automaton.
func (b *Builder) Verify() error {
	return verify(b.arena, b.n)
}

func repeatness(distinct int64, n int32) float64 {
	if n == 0 {
		return 1
	}
	total := int64(n) * int64(n+1) / 2
	return float64(distinct) / float64(total)
}

// alloc is only called once Extend has checked the free capacity.
func (b *Builder) alloc() StateRef {
	ref, err := b.arena.Allocate()
	if err != nil {
		panic(err)
	}
	return ref
}
