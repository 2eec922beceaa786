package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Phase tags the decision point the game is at.
type Phase int

const (
	InitialPlacement1 Phase = iota
	InitialPlacement2
	RollPhase
	MainPhase
	DiscardPhase
	MoveRobberPhase
	TradeResponsePhase
	GameOverPhase
)

var phaseNames = map[Phase]string{
	InitialPlacement1:  "INITIAL_PLACEMENT_1",
	InitialPlacement2:  "INITIAL_PLACEMENT_2",
	RollPhase:          "ROLL",
	MainPhase:          "MAIN",
	DiscardPhase:       "DISCARD",
	MoveRobberPhase:    "MOVE_ROBBER",
	TradeResponsePhase: "TRADE_RESPONSE",
	GameOverPhase:      "GAME_OVER",
}

func (p Phase) String() string { return phaseNames[p] }

// Building kinds for node occupancy.
const (
	NoBuilding int8 = iota
	SettlementBuilding
	CityBuilding
)

// TradeOffer is the pending player-to-player trade during the
// trade-response sub-phase. Offers are one card for one card; a
// responder may counter once, after which only the offerer answers.
type TradeOffer struct {
	Offerer   int
	Give      Resource // What the offerer gives
	Get       Resource // What the offerer wants
	Responder int
	Countered bool
	CGive     Resource // Counter: what the responder would give
	CGet      Resource // Counter: what the responder wants
}

// GameState is the dynamic simulation state. The board is shared and
// read-only; everything else is owned by the state and deep-copied.
type GameState struct {
	Board   *Board
	Config  Config
	Players []Player

	Current int // Seat whose turn it is
	Turn    int
	Phase   Phase
	Dice    [2]int // Current turn's roll, zero before rolling

	NodeOwner []int8 // Seat per node, -1 empty
	NodeKind  []int8 // NoBuilding/SettlementBuilding/CityBuilding
	EdgeOwner []int8 // Seat per edge, -1 empty

	Robber  int // Tile the robber occupies
	Bank    Hand
	DevDeck []DevCard

	// Initial placement bookkeeping: the settlement awaiting its
	// paired road, -1 when the next placement is a settlement.
	PendingNode int

	DiscardQueue []int // Seats still owing a discard after a 7
	Trade        *TradeOffer

	LongestRoadHolder int // Seat, -1 unheld
	LongestRoadLen    int
	LargestArmyHolder int // Seat, -1 unheld
	LargestArmySize   int

	Won Color // Winner color, "" while the game runs
}

// NewGameState creates a fresh game for 2-4 seats.
func NewGameState(colors []Color, cfg Config) (*GameState, error) {
	if len(colors) < 2 || len(colors) > 4 {
		return nil, fmt.Errorf("%d players: %w", len(colors), ErrConfiguration)
	}
	seen := map[Color]bool{}
	for _, c := range colors {
		if seen[c] {
			return nil, fmt.Errorf("duplicate color %s: %w", c, ErrConfiguration)
		}
		seen[c] = true
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()

	board := NewBoard(Layout{Shuffle: cfg.ShuffleBoard, Seed: cfg.Seed})

	gs := &GameState{
		Board:             board,
		Config:            cfg,
		Current:           0,
		Phase:             InitialPlacement1,
		NodeOwner:         filled(len(board.Nodes), -1),
		NodeKind:          make([]int8, len(board.Nodes)),
		EdgeOwner:         filled(len(board.Edges), -1),
		Robber:            board.Desert,
		PendingNode:       -1,
		LongestRoadHolder: -1,
		LargestArmyHolder: -1,
	}
	for _, c := range colors {
		gs.Players = append(gs.Players, newPlayer(c))
	}
	for r := range gs.Bank {
		gs.Bank[r] = BankSupply
	}
	gs.DevDeck = shuffledDevDeck(cfg.Seed)
	return gs, nil
}

func shuffledDevDeck(seed int64) []DevCard {
	var deck []DevCard
	for card, n := range devDeckCounts {
		for i := 0; i < n; i++ {
			deck = append(deck, DevCard(card))
		}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func filled(n int, v int8) []int8 {
	s := make([]int8, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// actor is the seat that must act now: the turn owner, except inside
// the discard and trade-response sub-phases.
func (gs *GameState) actor() int {
	switch gs.Phase {
	case DiscardPhase:
		if len(gs.DiscardQueue) > 0 {
			return gs.DiscardQueue[0]
		}
	case TradeResponsePhase:
		if gs.Trade != nil {
			if gs.Trade.Countered {
				return gs.Trade.Offerer
			}
			return gs.Trade.Responder
		}
	}
	return gs.Current
}

// ActorColor is the color of the player that must act now.
func (gs *GameState) ActorColor() Color {
	return gs.Players[gs.actor()].Color
}

// Player returns the identifier of the player to act.
func (gs *GameState) Player() string {
	return string(gs.ActorColor())
}

// Winner returns the winning color, or "" while the game runs.
func (gs *GameState) Winner() string {
	return string(gs.Won)
}

// WinnerColor returns the winning color and whether one exists.
func (gs *GameState) WinnerColor() (Color, bool) {
	return gs.Won, gs.Won != ""
}

func (gs *GameState) nextSeat(seat int) int {
	return (seat + 1) % len(gs.Players)
}

func (gs *GameState) seatOf(color Color) int {
	for i := range gs.Players {
		if gs.Players[i].Color == color {
			return i
		}
	}
	return -1
}

// VictoryPoints is a seat's full total including hidden VP cards.
func (gs *GameState) VictoryPoints(seat int) int {
	p := &gs.Players[seat]
	points := p.Settlements() + 2*p.Cities()
	points += p.devCardCount(VictoryPointCard)
	if gs.LongestRoadHolder == seat {
		points += 2
	}
	if gs.LargestArmyHolder == seat {
		points += 2
	}
	return points
}

// PublicVictoryPoints excludes unplayed victory-point cards.
func (gs *GameState) PublicVictoryPoints(seat int) int {
	return gs.VictoryPoints(seat) - gs.Players[seat].devCardCount(VictoryPointCard)
}

// Copy returns a deep copy sharing only the immutable board and config.
func (gs *GameState) Copy() *GameState {
	ns := *gs
	ns.Players = append([]Player(nil), gs.Players...)
	ns.NodeOwner = append([]int8(nil), gs.NodeOwner...)
	ns.NodeKind = append([]int8(nil), gs.NodeKind...)
	ns.EdgeOwner = append([]int8(nil), gs.EdgeOwner...)
	ns.DevDeck = append([]DevCard(nil), gs.DevDeck...)
	ns.DiscardQueue = append([]int(nil), gs.DiscardQueue...)
	if gs.Trade != nil {
		trade := *gs.Trade
		ns.Trade = &trade
	}
	return &ns
}

// Hash folds the decision-relevant fields into an FNV-1a digest so
// chance nodes can match stochastic outcomes.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	write := func(v int64) {
		binary.Write(h, binary.LittleEndian, v)
	}

	write(int64(gs.Current))
	write(int64(gs.actor()))
	write(int64(gs.Phase))
	write(int64(gs.Turn))
	write(int64(gs.Robber))
	write(int64(gs.Dice[0])<<8 | int64(gs.Dice[1]))
	write(int64(gs.PendingNode))
	for _, o := range gs.NodeOwner {
		write(int64(o))
	}
	for _, k := range gs.NodeKind {
		write(int64(k))
	}
	for _, o := range gs.EdgeOwner {
		write(int64(o))
	}
	for _, n := range gs.Bank {
		write(int64(n))
	}
	for i := range gs.Players {
		p := &gs.Players[i]
		for _, n := range p.Hand {
			write(int64(n))
		}
		for c := 0; c < NumDevCards; c++ {
			write(int64(p.DevCards[c])<<16 | int64(p.NewDevCards[c]))
		}
		write(int64(p.KnightsPlayed))
	}
	write(int64(len(gs.DevDeck)))
	write(int64(len(gs.DiscardQueue)))
	if gs.Trade != nil {
		write(int64(gs.Trade.Offerer)<<32 | int64(gs.Trade.Responder))
		write(int64(gs.Trade.Give)<<8 | int64(gs.Trade.Get))
	}
	return StateHash(h.Sum64())
}

// Play applies a move and returns the new state. It panics on a move
// outside the legal set; search code only ever plays enumerated moves.
// External callers go through Apply.
func (gs *GameState) Play(move Move) State {
	ns, err := gs.Apply(move)
	if err != nil {
		panic(fmt.Sprintf("play %v in phase %s: %v", move, gs.Phase, err))
	}
	return ns
}
