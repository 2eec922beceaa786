package game

// LegalMoves enumerates the legal moves for the player to act. The
// set is empty only at game over; every other phase yields at least
// one move.
func (gs *GameState) LegalMoves() []Move {
	switch gs.Phase {
	case InitialPlacement1, InitialPlacement2:
		return gs.initialPlacementMoves()
	case RollPhase:
		return []Move{newMove(RollAction)}
	case MainPhase:
		return gs.mainMoves()
	case DiscardPhase:
		return gs.discardMoves()
	case MoveRobberPhase:
		return gs.robberMoves()
	case TradeResponsePhase:
		return gs.tradeResponseMoves()
	default:
		return nil
	}
}

// newMove zeroes the reference fields to -1 so moves with the same
// meaning compare equal.
func newMove(action ActionType) *GameMove {
	return &GameMove{Action: action, Node: -1, Edge: -1, Edge2: -1, Tile: -1}
}

func (gs *GameState) initialPlacementMoves() []Move {
	seat := gs.Current
	var moves []Move
	if gs.PendingNode == -1 {
		for _, node := range gs.settlementSpots(seat, false) {
			m := newMove(PlaceSettlementAction)
			m.Node = node
			moves = append(moves, m)
		}
		return moves
	}
	// The paired road must touch the settlement just placed.
	for _, eid := range gs.Board.Nodes[gs.PendingNode].Edges {
		if gs.EdgeOwner[eid] == -1 {
			m := newMove(PlaceRoadAction)
			m.Edge = eid
			moves = append(moves, m)
		}
	}
	return moves
}

func (gs *GameState) mainMoves() []Move {
	seat := gs.Current
	p := &gs.Players[seat]
	moves := []Move{newMove(EndTurnAction)}

	// Build actions: affordability, adjacency, stock.
	if p.Hand.Covers(RoadCost) && p.RoadsLeft > 0 {
		for _, eid := range gs.roadSpots(seat) {
			m := newMove(BuildRoadAction)
			m.Edge = eid
			moves = append(moves, m)
		}
	}
	if p.Hand.Covers(SettlementCost) && p.SettlementsLeft > 0 {
		for _, node := range gs.settlementSpots(seat, true) {
			m := newMove(BuildSettlementAction)
			m.Node = node
			moves = append(moves, m)
		}
	}
	if p.Hand.Covers(CityCost) && p.CitiesLeft > 0 {
		for node, owner := range gs.NodeOwner {
			if int(owner) == seat && gs.NodeKind[node] == SettlementBuilding {
				m := newMove(BuildCityAction)
				m.Node = node
				moves = append(moves, m)
			}
		}
	}
	if p.Hand.Covers(DevCardCost) && len(gs.DevDeck) > 0 {
		moves = append(moves, newMove(BuyDevCardAction))
	}

	moves = append(moves, gs.devPlayMoves(seat)...)
	moves = append(moves, gs.bankTradeMoves(seat)...)
	moves = append(moves, gs.offerTradeMoves(seat)...)
	return moves
}

func (gs *GameState) devPlayMoves(seat int) []Move {
	p := &gs.Players[seat]
	var moves []Move

	if p.canPlay(Knight) {
		moves = append(moves, gs.robberTargets(seat, PlayKnightAction)...)
	}
	if p.canPlay(RoadBuilding) && p.RoadsLeft > 0 {
		moves = append(moves, gs.roadBuildingMoves(seat)...)
	}
	if p.canPlay(YearOfPlenty) {
		for a := 0; a < NumResources; a++ {
			for b := a; b < NumResources; b++ {
				var pick Hand
				pick[a]++
				pick[b]++
				if gs.Bank.Covers(pick) {
					m := newMove(PlayYearOfPlentyAction)
					m.Cards = pick
					moves = append(moves, m)
				}
			}
		}
	}
	if p.canPlay(Monopoly) {
		for r := 0; r < NumResources; r++ {
			m := newMove(PlayMonopolyAction)
			m.Give = Resource(r)
			moves = append(moves, m)
		}
	}
	return moves
}

// roadBuildingMoves enumerates the free road pairs, including the
// second road extending from the first. With one road left in stock
// (or a single open spot) a lone edge is allowed.
func (gs *GameState) roadBuildingMoves(seat int) []Move {
	first := gs.roadSpots(seat)
	var moves []Move
	seen := map[[2]int]bool{}
	for _, e1 := range first {
		if gs.Players[seat].RoadsLeft < 2 {
			m := newMove(PlayRoadBuildingAction)
			m.Edge = e1
			moves = append(moves, m)
			continue
		}
		after := gs.Copy()
		after.EdgeOwner[e1] = int8(seat)
		seconds := after.roadSpots(seat)
		if len(seconds) == 0 {
			m := newMove(PlayRoadBuildingAction)
			m.Edge = e1
			moves = append(moves, m)
			continue
		}
		for _, e2 := range seconds {
			key := [2]int{min(e1, e2), max(e1, e2)}
			if seen[key] {
				continue
			}
			seen[key] = true
			m := newMove(PlayRoadBuildingAction)
			m.Edge, m.Edge2 = key[0], key[1]
			moves = append(moves, m)
		}
	}
	return moves
}

func (gs *GameState) bankTradeMoves(seat int) []Move {
	p := &gs.Players[seat]
	var moves []Move
	for r := 0; r < NumResources; r++ {
		ratio := gs.tradeRatio(seat, Resource(r))
		if p.Hand[r] < ratio {
			continue
		}
		for g := 0; g < NumResources; g++ {
			if g == r || gs.Bank[g] < 1 {
				continue
			}
			m := newMove(BankTradeAction)
			m.Give, m.Get, m.Ratio = Resource(r), Resource(g), ratio
			moves = append(moves, m)
		}
	}
	return moves
}

// offerTradeMoves enumerates one-for-one offers to the table.
func (gs *GameState) offerTradeMoves(seat int) []Move {
	p := &gs.Players[seat]
	var moves []Move
	for r := 0; r < NumResources; r++ {
		if p.Hand[r] < 1 {
			continue
		}
		for g := 0; g < NumResources; g++ {
			if g == r {
				continue
			}
			m := newMove(OfferTradeAction)
			m.Give, m.Get = Resource(r), Resource(g)
			moves = append(moves, m)
		}
	}
	return moves
}

func (gs *GameState) tradeResponseMoves() []Move {
	t := gs.Trade
	if t.Countered {
		// Only the offerer answers a counter: take it or leave it.
		var moves []Move
		if gs.Players[t.Offerer].Hand[t.CGet] >= 1 {
			moves = append(moves, newMove(AcceptTradeAction))
		}
		return append(moves, newMove(RejectTradeAction))
	}

	responder := &gs.Players[t.Responder]
	moves := []Move{newMove(RejectTradeAction)}
	if responder.Hand[t.Get] >= 1 {
		moves = append(moves, newMove(AcceptTradeAction))
	}
	// A single bounded counter: the responder proposes their own
	// one-for-one exchange instead.
	for x := 0; x < NumResources; x++ {
		if responder.Hand[x] < 1 {
			continue
		}
		for y := 0; y < NumResources; y++ {
			if y == x || gs.Players[t.Offerer].Hand[y] < 1 {
				continue
			}
			if Resource(x) == t.Get && Resource(y) == t.Give {
				continue // Identical to accepting
			}
			m := newMove(CounterTradeAction)
			m.Give, m.Get = Resource(x), Resource(y)
			moves = append(moves, m)
		}
	}
	return moves
}

func (gs *GameState) discardMoves() []Move {
	seat := gs.actor()
	hand := gs.Players[seat].Hand
	count := hand.Total() / 2
	var moves []Move
	enumerateDiscards(hand, count, 0, Hand{}, func(pick Hand) {
		m := newMove(DiscardAction)
		m.Cards = pick
		moves = append(moves, m)
	})
	return moves
}

// enumerateDiscards visits every distinct multiset of size count
// drawable from hand.
func enumerateDiscards(hand Hand, count, resource int, pick Hand, visit func(Hand)) {
	if count == 0 {
		visit(pick)
		return
	}
	if resource >= NumResources {
		return
	}
	limit := min(hand[resource], count)
	for take := limit; take >= 0; take-- {
		pick[resource] = take
		enumerateDiscards(hand, count-take, resource+1, pick, visit)
	}
}

func (gs *GameState) robberMoves() []Move {
	return gs.robberTargets(gs.Current, MoveRobberAction)
}

// robberTargets enumerates robber destinations with their steal
// victims; a tile with no robbable opponent yields a single no-victim
// move. The robber must leave its current tile.
func (gs *GameState) robberTargets(seat int, action ActionType) []Move {
	var moves []Move
	for _, tile := range gs.Board.Tiles {
		if tile.ID == gs.Robber {
			continue
		}
		victims := gs.robbableAt(tile.ID, seat)
		if len(victims) == 0 {
			m := newMove(action)
			m.Tile = tile.ID
			moves = append(moves, m)
			continue
		}
		for _, v := range victims {
			m := newMove(action)
			m.Tile = tile.ID
			m.Victim = gs.Players[v].Color
			moves = append(moves, m)
		}
	}
	return moves
}

// robbableAt lists seats other than seat with a building on the tile
// and at least one card to steal.
func (gs *GameState) robbableAt(tile, seat int) []int {
	var victims []int
	seen := map[int]bool{}
	for _, node := range gs.tileNodes(tile) {
		owner := int(gs.NodeOwner[node])
		if owner == -1 || owner == seat || seen[owner] {
			continue
		}
		if gs.Players[owner].Hand.Total() > 0 {
			seen[owner] = true
			victims = append(victims, owner)
		}
	}
	return victims
}

// tileNodes lists node IDs on a tile's corners.
func (gs *GameState) tileNodes(tile int) []int {
	return gs.Board.Tiles[tile].Nodes[:]
}

// settlementSpots lists empty nodes satisfying the distance rule and,
// when connected is set, touching one of the seat's roads.
func (gs *GameState) settlementSpots(seat int, connected bool) []int {
	var spots []int
	for node := range gs.Board.Nodes {
		if gs.NodeOwner[node] != -1 {
			continue
		}
		if gs.neighborOccupied(node) {
			continue
		}
		if connected && !gs.touchesOwnRoad(node, seat) {
			continue
		}
		spots = append(spots, node)
	}
	return spots
}

func (gs *GameState) neighborOccupied(node int) bool {
	for _, adj := range gs.Board.Nodes[node].Nodes {
		if gs.NodeOwner[adj] != -1 {
			return true
		}
	}
	return false
}

func (gs *GameState) touchesOwnRoad(node, seat int) bool {
	for _, eid := range gs.Board.Nodes[node].Edges {
		if int(gs.EdgeOwner[eid]) == seat {
			return true
		}
	}
	return false
}

// roadSpots lists empty edges connected to the seat's network. A
// connection through a node occupied by an opponent's building does
// not count.
func (gs *GameState) roadSpots(seat int) []int {
	var spots []int
	for eid, owner := range gs.EdgeOwner {
		if owner != -1 {
			continue
		}
		if gs.roadConnects(eid, seat) {
			spots = append(spots, eid)
		}
	}
	return spots
}

func (gs *GameState) roadConnects(edge, seat int) bool {
	for _, node := range gs.Board.Edges[edge].Nodes {
		owner := int(gs.NodeOwner[node])
		if owner == seat {
			return true
		}
		if owner != -1 {
			continue // Opponent building blocks the junction
		}
		for _, other := range gs.Board.Nodes[node].Edges {
			if other != edge && int(gs.EdgeOwner[other]) == seat {
				return true
			}
		}
	}
	return false
}

// tradeRatio is the best maritime ratio the seat has for a resource:
// 2 with a matching port, 3 with any generic port, otherwise 4.
func (gs *GameState) tradeRatio(seat int, r Resource) int {
	ratio := 4
	for node, owner := range gs.NodeOwner {
		if int(owner) != seat {
			continue
		}
		pid := gs.Board.Nodes[node].Port
		if pid == -1 {
			continue
		}
		port := gs.Board.Ports[pid]
		if port.Generic {
			if ratio > 3 {
				ratio = 3
			}
		} else if port.Resource == r {
			return 2
		}
	}
	return ratio
}
