package user

// Reduce computes the state that follows state once ev is applied. A nil
// state is treated as Initial(). Loaded produces a new State holding a copy of
// the payload; every other event returns state itself.
func Reduce(state *State, ev Event) *State {
	if state == nil {
		state = Initial()
	}
	switch ev := ev.(type) {
	case Loaded:
		return &State{users: cloneRecords(ev.Users), loaded: true}
	case Init:
		return state
	default:
		return state
	}
}
