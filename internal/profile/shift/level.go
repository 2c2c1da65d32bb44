package shift

// MinStates is the minimum number of states a complete level has.
const MinStates = 2

// Level is an ordered sequence of mutually distinct shift states.
type Level struct {
	states []*State
}

// NewLevel returns an empty shift level.
func NewLevel() *Level {
	return &Level{}
}

// Add appends the state unless it is equal to a state already in the
// level. It returns false if the state was rejected as a duplicate.
func (l *Level) Add(s *State) bool {
	if l.Index(s) >= 0 {
		return false
	}
	l.states = append(l.states, s)
	return true
}

// NumStates returns the number of states.
func (l *Level) NumStates() int {
	return len(l.states)
}

// State returns the state at index i.
func (l *Level) State(i int) *State {
	return l.states[i]
}

// States returns the states in order. The slice must not be modified.
func (l *Level) States() []*State {
	return l.states
}

// Index returns the index of the first state equal to s, or -1.
func (l *Level) Index(s *State) int {
	for i, existing := range l.states {
		if Equal(s, existing) {
			return i
		}
	}
	return -1
}

// EmptyIndex returns the index of the level's empty state, or -1.
func (l *Level) EmptyIndex() int {
	for i, s := range l.states {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}
