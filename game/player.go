package game

// Color identifies a player seat.
type Color string

const (
	Red    Color = "RED"
	Blue   Color = "BLUE"
	Orange Color = "ORANGE"
	White  Color = "WHITE"
)

// SeatColors is the fixed seating order for new games.
var SeatColors = []Color{Red, Blue, Orange, White}

// Building stock per player.
const (
	MaxRoads       = 15
	MaxSettlements = 5
	MaxCities      = 4
)

// Player is one seat's private and public holdings. The engine sees
// everything; hiding hands from opponents is a presentation concern.
type Player struct {
	Color           Color
	Hand            Hand
	DevCards        [NumDevCards]int // Playable from next turn on
	NewDevCards     [NumDevCards]int // Bought this turn, not yet playable
	RoadsLeft       int
	SettlementsLeft int
	CitiesLeft      int
	KnightsPlayed   int
	PlayedDev       bool // A non-victory-point card was played this turn
}

func newPlayer(color Color) Player {
	return Player{
		Color:           color,
		RoadsLeft:       MaxRoads,
		SettlementsLeft: MaxSettlements,
		CitiesLeft:      MaxCities,
	}
}

// Settlements returns the number of settlements on the board.
func (p *Player) Settlements() int { return MaxSettlements - p.SettlementsLeft }

// Cities returns the number of cities on the board.
func (p *Player) Cities() int { return MaxCities - p.CitiesLeft }

// devCardCount is the total of playable and newly bought cards of one
// type.
func (p *Player) devCardCount(card DevCard) int {
	return p.DevCards[card] + p.NewDevCards[card]
}

// canPlay reports whether the player may play the given card this turn:
// it must predate this turn and no other non-VP card may have been
// played yet.
func (p *Player) canPlay(card DevCard) bool {
	return !p.PlayedDev && card != VictoryPointCard && p.DevCards[card] > 0
}
