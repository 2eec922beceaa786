package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, gs *GameState, move Move) *GameState {
	t.Helper()
	ns, err := gs.Apply(move)
	require.NoError(t, err)
	return ns
}

// finishPlacement drives the snake placement with the first legal
// move at every step, landing in the first roll phase.
func finishPlacement(t *testing.T, gs *GameState) *GameState {
	t.Helper()
	for gs.Phase == InitialPlacement1 || gs.Phase == InitialPlacement2 {
		moves := gs.LegalMoves()
		require.NotEmpty(t, moves, "Placement should always have a legal move")
		gs = mustApply(t, gs, moves[0])
	}
	require.Equal(t, RollPhase, gs.Phase, "Placement should end at the first roll")
	return gs
}

func legalOfType(gs *GameState, action ActionType) []*GameMove {
	var moves []*GameMove
	for _, m := range gs.LegalMoves() {
		gm := m.(*GameMove)
		if gm.Action == action {
			moves = append(moves, gm)
		}
	}
	return moves
}

func TestInitialPlacementMoves(t *testing.T) {
	gs := newTestGame(t, 2)

	t.Run("empty board offers every node", func(t *testing.T) {
		moves := gs.LegalMoves()
		require.Len(t, moves, 54, "Every node is open for the first settlement")
		for _, m := range moves {
			require.Equal(t, PlaceSettlementAction, m.(*GameMove).Action, "Only settlements may be placed first")
		}
	})

	t.Run("distance rule prunes neighbors", func(t *testing.T) {
		node := 0
		m := newMove(PlaceSettlementAction)
		m.Node = node
		ns := mustApply(t, gs, m)

		// Skip the paired road to look at the next settlement choice.
		road := ns.LegalMoves()[0]
		ns = mustApply(t, ns, road)

		for _, next := range ns.LegalMoves() {
			gm := next.(*GameMove)
			require.NotEqual(t, node, gm.Node, "An occupied node is not offered")
			require.NotContains(t, ns.Board.Nodes[node].Nodes, gm.Node, "Neighbors of a settlement are not offered")
		}
	})

	t.Run("paired road touches the settlement", func(t *testing.T) {
		m := newMove(PlaceSettlementAction)
		m.Node = 10
		ns := mustApply(t, gs, m)

		moves := ns.LegalMoves()
		require.NotEmpty(t, moves, "A placed settlement always has an open road")
		for _, rm := range moves {
			gm := rm.(*GameMove)
			require.Equal(t, PlaceRoadAction, gm.Action, "A road must follow the settlement")
			require.Contains(t, ns.Board.Nodes[10].Edges, gm.Edge, "The paired road touches the new settlement")
		}
	})
}

func TestSnakeOrder(t *testing.T) {
	gs := newTestGame(t, 3)

	var placements []int
	for gs.Phase == InitialPlacement1 || gs.Phase == InitialPlacement2 {
		if gs.LegalMoves()[0].(*GameMove).Action == PlaceSettlementAction {
			placements = append(placements, gs.Current)
		}
		gs = mustApply(t, gs, gs.LegalMoves()[0])
	}

	require.Equal(t, []int{0, 1, 2, 2, 1, 0}, placements, "Placement should snake forward then backward")
	require.Equal(t, 0, gs.Current, "The first seat rolls first")
	require.Equal(t, RollPhase, gs.Phase, "The game proper starts after placement")

	for seat := range gs.Players {
		require.Equal(t, 2, gs.Players[seat].Settlements(), "Each seat placed two settlements")
		require.Equal(t, MaxRoads-2, gs.Players[seat].RoadsLeft, "Each seat placed two roads")
	}
}

func TestMainPhaseMoves(t *testing.T) {
	gs := finishPlacement(t, newTestGame(t, 2))
	gs.Phase = MainPhase

	t.Run("end turn is always available", func(t *testing.T) {
		require.NotEmpty(t, legalOfType(gs, EndTurnAction), "End turn should always be legal in the main phase")
	})

	t.Run("builds require resources", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = Hand{}
		require.Empty(t, legalOfType(s, BuildRoadAction), "No road without resources")
		require.Empty(t, legalOfType(s, BuildSettlementAction), "No settlement without resources")
		require.Empty(t, legalOfType(s, BuyDevCardAction), "No dev card without resources")
	})

	t.Run("roads extend the network", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = RoadCost
		moves := legalOfType(s, BuildRoadAction)
		require.NotEmpty(t, moves, "An affordable road should be offered")
		for _, m := range moves {
			require.True(t, s.roadConnects(m.Edge, 0), "Every offered road connects to the network")
			require.Equal(t, int8(-1), s.EdgeOwner[m.Edge], "Only empty edges are offered")
		}
	})

	t.Run("cities upgrade own settlements", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = CityCost
		moves := legalOfType(s, BuildCityAction)
		require.Len(t, moves, 2, "Both settlements can be upgraded")
		for _, m := range moves {
			require.Equal(t, int8(0), s.NodeOwner[m.Node], "Only own settlements upgrade")
			require.Equal(t, SettlementBuilding, s.NodeKind[m.Node], "Only settlements upgrade")
		}
	})

	t.Run("city stock limits upgrades", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = CityCost
		s.Players[0].CitiesLeft = 0
		require.Empty(t, legalOfType(s, BuildCityAction), "No upgrade without city stock")
	})

	t.Run("bank trade respects the ratio", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].Hand = Hand{Wood: 3}
		require.Empty(t, legalOfType(s, BankTradeAction), "Three cards do not meet a 4:1 ratio")

		s.Players[0].Hand = Hand{Wood: 4}
		moves := legalOfType(s, BankTradeAction)
		require.Len(t, moves, 4, "Four wood trade against each other resource")
		for _, m := range moves {
			require.Equal(t, Wood, m.Give, "Only the held resource can be given")
			require.Equal(t, 4, m.Ratio, "Without a port the ratio is 4")
		}
	})

	t.Run("dev cards bought this turn stay locked", func(t *testing.T) {
		s := gs.Copy()
		s.Players[0].NewDevCards[Knight] = 1
		require.Empty(t, legalOfType(s, PlayKnightAction), "A card bought this turn cannot be played")

		s.Players[0].DevCards[Knight] = 1
		require.NotEmpty(t, legalOfType(s, PlayKnightAction), "A card from an earlier turn can be played")

		s.Players[0].PlayedDev = true
		require.Empty(t, legalOfType(s, PlayKnightAction), "Only one dev card per turn")
	})
}

func TestDiscardEnumeration(t *testing.T) {
	t.Run("eight cards discard four", func(t *testing.T) {
		gs := newTestGame(t, 2)
		gs.Phase = DiscardPhase
		gs.DiscardQueue = []int{0}
		gs.Players[0].Hand = Hand{Wood: 2, Brick: 2, Sheep: 2, Wheat: 2}

		moves := gs.LegalMoves()
		require.Len(t, moves, 19, "Two of four types choosing four is 19 multisets")

		seen := map[Hand]bool{}
		for _, m := range moves {
			gm := m.(*GameMove)
			require.Equal(t, DiscardAction, gm.Action, "Only discards are legal")
			require.Equal(t, 4, gm.Cards.Total(), "Half of eight cards is four")
			require.True(t, gs.Players[0].Hand.Covers(gm.Cards), "A discard only spends held cards")
			require.False(t, seen[gm.Cards], "Discards should be distinct")
			seen[gm.Cards] = true
		}
	})

	t.Run("odd hands round down", func(t *testing.T) {
		gs := newTestGame(t, 2)
		gs.Phase = DiscardPhase
		gs.DiscardQueue = []int{0}
		gs.Players[0].Hand = Hand{Wood: 9}

		moves := gs.LegalMoves()
		require.Len(t, moves, 1, "A single-type hand has one discard choice")
		require.Equal(t, 4, moves[0].(*GameMove).Cards.Total(), "Nine cards discard four")
	})
}

func TestRobberMoves(t *testing.T) {
	gs := finishPlacement(t, newTestGame(t, 2))
	gs.Phase = MoveRobberPhase

	t.Run("robber must move", func(t *testing.T) {
		for _, m := range gs.LegalMoves() {
			require.NotEqual(t, gs.Robber, m.(*GameMove).Tile, "The robber cannot stay put")
		}
	})

	t.Run("victims hold cards", func(t *testing.T) {
		s := gs.Copy()
		s.Players[1].Hand = Hand{Ore: 1}
		sawVictim := false
		for _, m := range s.LegalMoves() {
			gm := m.(*GameMove)
			if gm.Victim == "" {
				continue
			}
			sawVictim = true
			require.Equal(t, SeatColors[1], gm.Victim, "Only opponents are robbed")
			victimHasBuilding := false
			for _, node := range s.Board.Tiles[gm.Tile].Nodes {
				if s.NodeOwner[node] == 1 {
					victimHasBuilding = true
				}
			}
			require.True(t, victimHasBuilding, "Victims need a building on the tile")
		}
		require.True(t, sawVictim, "Some destination should offer a steal")
	})

	t.Run("empty hands cannot be robbed", func(t *testing.T) {
		s := gs.Copy()
		for seat := range s.Players {
			s.Players[seat].Hand = Hand{}
		}
		for _, m := range s.LegalMoves() {
			require.Empty(t, m.(*GameMove).Victim, "Nobody with an empty hand is a victim")
		}
	})
}

func TestTradeResponseMoves(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Phase = TradeResponsePhase
	gs.Players[0].Hand = Hand{Wood: 1, Sheep: 1}
	gs.Players[1].Hand = Hand{Ore: 1, Brick: 1}
	gs.Trade = &TradeOffer{Offerer: 0, Give: Wood, Get: Ore, Responder: 1}

	t.Run("responder may accept with the wanted card", func(t *testing.T) {
		require.NotEmpty(t, legalOfType(gs, AcceptTradeAction), "Holding the wanted card allows accepting")
		require.NotEmpty(t, legalOfType(gs, RejectTradeAction), "Rejecting is always allowed")
	})

	t.Run("responder cannot accept without the card", func(t *testing.T) {
		s := gs.Copy()
		s.Players[1].Hand = Hand{Sheep: 1}
		require.Empty(t, legalOfType(s, AcceptTradeAction), "Accepting requires the wanted card")
		require.NotEmpty(t, legalOfType(s, RejectTradeAction), "Rejecting stays available")
	})

	t.Run("counters exchange held cards", func(t *testing.T) {
		counters := legalOfType(gs, CounterTradeAction)
		require.NotEmpty(t, counters, "Held cards should allow countering")
		for _, m := range counters {
			require.GreaterOrEqual(t, gs.Players[1].Hand[m.Give], 1, "Counters give a held card")
			require.GreaterOrEqual(t, gs.Players[0].Hand[m.Get], 1, "Counters want a card the offerer holds")
		}
	})

	t.Run("a countered offer leaves only accept or reject", func(t *testing.T) {
		s := gs.Copy()
		s.Trade.Countered = true
		s.Trade.CGive, s.Trade.CGet = Ore, Wood
		for _, m := range s.LegalMoves() {
			gm := m.(*GameMove)
			require.Contains(t, []ActionType{AcceptTradeAction, RejectTradeAction}, gm.Action,
				"The offerer can only take or leave a counter")
		}
	})
}

func TestTradeRatio(t *testing.T) {
	gs := newTestGame(t, 2)

	require.Equal(t, 4, gs.tradeRatio(0, Wood), "No port means 4:1")

	// Seat a settlement on a generic port, then on a matching one.
	for _, port := range gs.Board.Ports {
		if port.Generic {
			gs.NodeOwner[port.Nodes[0]] = 0
			require.Equal(t, 3, gs.tradeRatio(0, Wood), "A 3:1 port improves every resource")
			gs.NodeOwner[port.Nodes[0]] = -1
		} else if port.Resource == Wood {
			gs.NodeOwner[port.Nodes[0]] = 0
			require.Equal(t, 2, gs.tradeRatio(0, Wood), "A matching 2:1 port wins")
			require.Equal(t, 4, gs.tradeRatio(0, Ore), "A 2:1 port helps only its resource")
			gs.NodeOwner[port.Nodes[0]] = -1
		}
	}
}
