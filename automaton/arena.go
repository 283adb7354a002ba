package automaton

import (
	"math"
	"sync"
)

// StateRef is the index of a state inside an Arena.
type StateRef int32

const (
	// None marks the absence of a state, e.g. the suffix link of the root.
	None StateRef = -1
	// Root is always the first state allocated by a Builder.
	Root StateRef = 0
)

var mapPool = sync.Pool{
	New: func() any {
		return make(map[rune]StateRef)
	},
}

func getMap() map[rune]StateRef {
	return mapPool.Get().(map[rune]StateRef)
}

func putMap(x map[rune]StateRef) {
	for key := range x {
		delete(x, key)
	}
	mapPool.Put(x)
}

type state struct {
	next   map[rune]StateRef // 出边
	link   StateRef          // 后缀链接
	length int32             // 当前节点对应的最长子串的长度
	count  int
}

// preallocHint caps the up-front slice capacity so a large
// configured maximum does not reserve memory it may never use.
const preallocHint = 1 << 16

// Arena owns every state of one automaton. It is not safe for
// concurrent mutation.
type Arena struct {
	states    []state
	maxStates int
}

// NewArena returns an empty arena holding at most maxStates states.
// A maxStates <= 0, or one past what a StateRef can address, is clamped
// to math.MaxInt32.
func NewArena(maxStates int) *Arena {
	if maxStates <= 0 || maxStates > math.MaxInt32 {
		maxStates = math.MaxInt32
	}
	capacity := maxStates
	if capacity > preallocHint {
		capacity = preallocHint
	}
	return &Arena{
		states:    make([]state, 0, capacity),
		maxStates: maxStates,
	}
}

// Allocate appends a fresh state: length 0, no link, no transitions, count 0.
func (a *Arena) Allocate() (StateRef, error) {
	if a.Free() < 1 {
		return None, &CapacityError{MaxStates: a.maxStates, Needed: len(a.states) + 1}
	}
	a.states = append(a.states, state{
		next: getMap(),
		link: None,
	})
	return StateRef(len(a.states) - 1), nil
}

// Len returns the number of allocated states.
func (a *Arena) Len() int {
	return len(a.states)
}

// MaxStates returns the limit, math.MaxInt32 for an unbounded arena.
func (a *Arena) MaxStates() int {
	return a.maxStates
}

// Free returns how many more states may be allocated.
func (a *Arena) Free() int {
	return a.maxStates - len(a.states)
}

func (a *Arena) Length(ref StateRef) int32 {
	return a.states[ref].length
}

func (a *Arena) SetLength(ref StateRef, length int32) {
	a.states[ref].length = length
}

func (a *Arena) Link(ref StateRef) StateRef {
	return a.states[ref].link
}

func (a *Arena) SetLink(ref StateRef, link StateRef) {
	a.states[ref].link = link
}

// Next returns the target of the transition on c, if any.
func (a *Arena) Next(ref StateRef, c rune) (StateRef, bool) {
	target, ok := a.states[ref].next[c]
	return target, ok
}

func (a *Arena) SetNext(ref StateRef, c rune, target StateRef) {
	a.states[ref].next[c] = target
}

// Transitions exposes the transition map of ref. Callers must not
// modify the returned map.
func (a *Arena) Transitions(ref StateRef) map[rune]StateRef {
	return a.states[ref].next
}

// copyTransitions copies the transitions of src into dst.
func (a *Arena) copyTransitions(dst, src StateRef) {
	next := a.states[dst].next
	for c, target := range a.states[src].next {
		next[c] = target
	}
}

func (a *Arena) Count(ref StateRef) int {
	return a.states[ref].count
}

func (a *Arena) SetCount(ref StateRef, count int) {
	a.states[ref].count = count
}

func (a *Arena) AddCount(ref StateRef, delta int) {
	a.states[ref].count += delta
}

// Clear returns every transition map to the pool and empties the arena.
func (a *Arena) Clear() {
	for i := range a.states {
		putMap(a.states[i].next)
		a.states[i].next = nil
	}
	a.states = a.states[:0]
}
