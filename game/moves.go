package game

import "fmt"

// ActionType represents the type of move a player can perform.
type ActionType int

const (
	RollAction ActionType = iota
	PlaceSettlementAction // Initial placement settlement
	PlaceRoadAction       // Initial placement paired road
	BuildRoadAction
	BuildSettlementAction
	BuildCityAction
	BuyDevCardAction
	PlayKnightAction
	PlayRoadBuildingAction
	PlayYearOfPlentyAction
	PlayMonopolyAction
	MoveRobberAction
	BankTradeAction
	OfferTradeAction
	AcceptTradeAction
	RejectTradeAction
	CounterTradeAction
	DiscardAction
	EndTurnAction
)

var actionNames = map[ActionType]string{
	RollAction:             "ROLL",
	PlaceSettlementAction:  "PLACE_SETTLEMENT",
	PlaceRoadAction:        "PLACE_ROAD",
	BuildRoadAction:        "BUILD_ROAD",
	BuildSettlementAction:  "BUILD_SETTLEMENT",
	BuildCityAction:        "BUILD_CITY",
	BuyDevCardAction:       "BUY_DEV_CARD",
	PlayKnightAction:       "PLAY_KNIGHT",
	PlayRoadBuildingAction: "PLAY_ROAD_BUILDING",
	PlayYearOfPlentyAction: "PLAY_YEAR_OF_PLENTY",
	PlayMonopolyAction:     "PLAY_MONOPOLY",
	MoveRobberAction:       "MOVE_ROBBER",
	BankTradeAction:        "BANK_TRADE",
	OfferTradeAction:       "OFFER_TRADE",
	AcceptTradeAction:      "ACCEPT_TRADE",
	RejectTradeAction:      "REJECT_TRADE",
	CounterTradeAction:     "COUNTER_TRADE",
	DiscardAction:          "DISCARD",
	EndTurnAction:          "END_TURN",
}

func (a ActionType) String() string { return actionNames[a] }

// GameMove is a move as pure data; all effects live in Apply. The
// zero values of unused fields are normalized by the constructors in
// legal.go so two equal moves compare equal.
type GameMove struct {
	Action ActionType
	Node   int      // Settlement/city node
	Edge   int      // Road edge (also the first road-building edge)
	Edge2  int      // Second road-building edge, -1 if single
	Tile   int      // Robber destination tile
	Victim Color    // Robber steal victim, "" for none
	Give   Resource // Trade give / monopoly resource
	Get    Resource // Trade get
	Ratio  int      // Bank trade give count
	Cards  Hand     // Discard selection / year-of-plenty pair

	// Forced pins the dice sum of a roll so search chance nodes can
	// expand outcomes deterministically. 0 means roll for real.
	Forced int
}

// IsDeterministic reports whether applying the move resolves no
// stochastic draw. Rolls (unless forced) and robber moves that steal
// are chance moves.
func (m *GameMove) IsDeterministic() bool {
	switch m.Action {
	case RollAction:
		return m.Forced != 0
	case MoveRobberAction, PlayKnightAction:
		return m.Victim == ""
	default:
		return true
	}
}

func (m *GameMove) String() string {
	switch m.Action {
	case PlaceSettlementAction, BuildSettlementAction, BuildCityAction:
		return fmt.Sprintf("%s(node=%d)", m.Action, m.Node)
	case PlaceRoadAction, BuildRoadAction:
		return fmt.Sprintf("%s(edge=%d)", m.Action, m.Edge)
	case PlayRoadBuildingAction:
		return fmt.Sprintf("%s(edges=%d,%d)", m.Action, m.Edge, m.Edge2)
	case MoveRobberAction:
		return fmt.Sprintf("%s(tile=%d,victim=%s)", m.Action, m.Tile, m.Victim)
	case BankTradeAction:
		return fmt.Sprintf("%s(%d %s for 1 %s)", m.Action, m.Ratio, m.Give, m.Get)
	case OfferTradeAction, CounterTradeAction:
		return fmt.Sprintf("%s(1 %s for 1 %s)", m.Action, m.Give, m.Get)
	case PlayMonopolyAction:
		return fmt.Sprintf("%s(%s)", m.Action, m.Give)
	default:
		return m.Action.String()
	}
}

// normalized strips the forced dice payload so legality comparison
// treats a forced roll as the roll action it resolves.
func (m GameMove) normalized() GameMove {
	m.Forced = 0
	return m
}
