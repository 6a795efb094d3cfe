package game

// State is the engine's lifecycle phase.
type State string

const (
	WaitingForPlayers State = "waiting_for_players"
	ReadyToStart      State = "ready_to_start"
	InProgress        State = "in_progress"
	Paused            State = "paused"
	Finished          State = "finished"
	Cancelled         State = "cancelled"
)

var transitions = map[State][]State{
	WaitingForPlayers: {ReadyToStart, InProgress, Cancelled},
	ReadyToStart:      {InProgress, Cancelled},
	InProgress:        {Paused, Finished, Cancelled},
	Paused:            {InProgress, Cancelled},
}

// CanTransition reports whether the machine allows s -> to.
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Finished || s == Cancelled
}

func (s State) String() string {
	return string(s)
}
