package game

// Move is one decision as data. Implementations never carry behavior;
// the transition function interprets them.
type Move interface {
	IsDeterministic() bool
}

type StateHash uint64

// State is the search-facing view of a game: operations always return
// a new copy, never mutate the receiver.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluate scores a state between -1 and 1 from the perspective of the
// player to act, positive meaning favorable.
type Evaluate func(State) float64
