package game

import "fmt"

// Apply resolves one move into a new state. The receiver is never
// mutated: validation happens first and the transition runs on a
// copy, so a failure leaves no partial effects. Stochastic elements
// (dice, robber steals) are resolved here with the configured random
// source and the outcome is recorded in the result.
func (gs *GameState) Apply(move Move) (*GameState, error) {
	gm, ok := move.(*GameMove)
	if !ok {
		return nil, fmt.Errorf("unknown move type %T: %w", move, ErrIllegalMove)
	}
	if err := gs.checkReferences(gm); err != nil {
		return nil, err
	}
	if !gs.isLegal(gm) {
		return nil, gs.explainRejection(gm)
	}

	ns := gs.Copy()
	ns.resolve(gm)
	ns.checkWinner()
	return ns, nil
}

func (gs *GameState) checkReferences(gm *GameMove) error {
	if gm.Node != -1 && (gm.Node < 0 || gm.Node >= len(gs.Board.Nodes)) {
		return fmt.Errorf("node %d: %w", gm.Node, ErrInvalidReference)
	}
	for _, edge := range []int{gm.Edge, gm.Edge2} {
		if edge != -1 && (edge < 0 || edge >= len(gs.Board.Edges)) {
			return fmt.Errorf("edge %d: %w", edge, ErrInvalidReference)
		}
	}
	if gm.Tile != -1 && (gm.Tile < 0 || gm.Tile >= len(gs.Board.Tiles)) {
		return fmt.Errorf("tile %d: %w", gm.Tile, ErrInvalidReference)
	}
	// Legality comparison strips the forced payload, so bound it here.
	if gm.Action == RollAction && gm.Forced != 0 && (gm.Forced < 2 || gm.Forced > 12) {
		return fmt.Errorf("forced roll sum %d: %w", gm.Forced, ErrIllegalMove)
	}
	return nil
}

// isLegal holds the soundness contract: Apply succeeds iff the move is
// in the enumerated legal set. Forced dice payloads are ignored for
// the comparison.
func (gs *GameState) isLegal(gm *GameMove) bool {
	want := gm.normalized()
	for _, legal := range gs.LegalMoves() {
		if *legal.(*GameMove) == want {
			return true
		}
	}
	return false
}

// explainRejection picks the most specific error for an illegal move.
func (gs *GameState) explainRejection(gm *GameMove) error {
	if gm.Action == PlayYearOfPlentyAction && gs.Phase == MainPhase {
		p := &gs.Players[gs.actor()]
		if p.canPlay(YearOfPlenty) && !gs.Bank.Covers(gm.Cards) {
			return fmt.Errorf("year of plenty %v: %w", gm.Cards, ErrBankExhausted)
		}
	}
	return fmt.Errorf("%v in phase %s: %w", gm, gs.Phase, ErrIllegalMove)
}

// resolve mutates the (copied) state. The move has already been
// validated; nothing here can fail.
func (ns *GameState) resolve(gm *GameMove) {
	seat := ns.actor()
	switch gm.Action {
	case RollAction:
		ns.resolveRoll(gm.Forced)
	case PlaceSettlementAction:
		ns.placeInitialSettlement(seat, gm.Node)
	case PlaceRoadAction:
		ns.placeInitialRoad(seat, gm.Edge)
	case BuildRoadAction:
		ns.pay(seat, RoadCost)
		ns.placeRoad(seat, gm.Edge)
	case BuildSettlementAction:
		ns.pay(seat, SettlementCost)
		ns.placeSettlement(seat, gm.Node)
	case BuildCityAction:
		ns.pay(seat, CityCost)
		ns.NodeKind[gm.Node] = CityBuilding
		ns.Players[seat].CitiesLeft--
		ns.Players[seat].SettlementsLeft++
	case BuyDevCardAction:
		ns.pay(seat, DevCardCost)
		card := ns.DevDeck[0]
		ns.DevDeck = ns.DevDeck[1:]
		ns.Players[seat].NewDevCards[card]++
	case PlayKnightAction:
		ns.spendDevCard(seat, Knight)
		ns.Players[seat].KnightsPlayed++
		ns.refreshLargestArmy(seat)
		ns.moveRobber(seat, gm.Tile, gm.Victim)
	case PlayRoadBuildingAction:
		ns.spendDevCard(seat, RoadBuilding)
		ns.placeRoad(seat, gm.Edge)
		if gm.Edge2 != -1 {
			ns.placeRoad(seat, gm.Edge2)
		}
	case PlayYearOfPlentyAction:
		ns.spendDevCard(seat, YearOfPlenty)
		ns.Bank.subtract(gm.Cards)
		ns.Players[seat].Hand.add(gm.Cards)
	case PlayMonopolyAction:
		ns.spendDevCard(seat, Monopoly)
		for other := range ns.Players {
			if other == seat {
				continue
			}
			n := ns.Players[other].Hand[gm.Give]
			ns.Players[other].Hand[gm.Give] = 0
			ns.Players[seat].Hand[gm.Give] += n
		}
	case MoveRobberAction:
		ns.moveRobber(seat, gm.Tile, gm.Victim)
	case BankTradeAction:
		ns.Players[seat].Hand[gm.Give] -= gm.Ratio
		ns.Bank[gm.Give] += gm.Ratio
		ns.Bank[gm.Get]--
		ns.Players[seat].Hand[gm.Get]++
	case OfferTradeAction:
		ns.Trade = &TradeOffer{
			Offerer:   seat,
			Give:      gm.Give,
			Get:       gm.Get,
			Responder: ns.nextSeat(seat),
		}
		ns.Phase = TradeResponsePhase
	case AcceptTradeAction:
		ns.settleTrade()
	case RejectTradeAction:
		ns.rejectTrade()
	case CounterTradeAction:
		ns.Trade.Countered = true
		ns.Trade.CGive, ns.Trade.CGet = gm.Give, gm.Get
	case DiscardAction:
		ns.Players[seat].Hand.subtract(gm.Cards)
		ns.Bank.add(gm.Cards)
		ns.DiscardQueue = ns.DiscardQueue[1:]
		if len(ns.DiscardQueue) == 0 {
			ns.Phase = MoveRobberPhase
		}
	case EndTurnAction:
		ns.endTurn(seat)
	}
}

func (ns *GameState) resolveRoll(forced int) {
	if forced != 0 {
		// Search chance nodes pin the sum; split it into a plausible
		// pair for the record.
		d1 := forced / 2
		ns.Dice = [2]int{d1, forced - d1}
	} else {
		d1, d2 := ns.Config.Dice()
		ns.Dice = [2]int{d1, d2}
	}
	sum := ns.Dice[0] + ns.Dice[1]

	if sum == 7 {
		ns.DiscardQueue = ns.discardOrder()
		if len(ns.DiscardQueue) > 0 {
			ns.Phase = DiscardPhase
		} else {
			ns.Phase = MoveRobberPhase
		}
		return
	}
	ns.produce(sum)
	ns.Phase = MainPhase
}

// discardOrder lists seats over the discard limit, starting from the
// roller and proceeding in turn order.
func (ns *GameState) discardOrder() []int {
	var queue []int
	seat := ns.Current
	for i := 0; i < len(ns.Players); i++ {
		if ns.Players[seat].Hand.Total() > ns.Config.DiscardLimit {
			queue = append(queue, seat)
		}
		seat = ns.nextSeat(seat)
	}
	return queue
}

// produce credits every settlement and city adjacent to a matching
// tile, robber tile excluded. If total demand for a resource exceeds
// the bank, the shortage policy decides: by default no claimant
// receives that resource type this roll; the single-claimant policy
// still pays out a lone claimant from what remains.
func (ns *GameState) produce(sum int) {
	type claim struct {
		seat   int
		amount int
	}
	demand := [NumResources][]claim{}

	for _, tid := range ns.Board.tilesByNumber(sum) {
		if tid == ns.Robber {
			continue
		}
		tile := ns.Board.Tiles[tid]
		for _, node := range tile.Nodes {
			owner := int(ns.NodeOwner[node])
			if owner == -1 {
				continue
			}
			amount := 1
			if ns.NodeKind[node] == CityBuilding {
				amount = 2
			}
			demand[tile.Resource] = append(demand[tile.Resource], claim{owner, amount})
		}
	}

	for r, claims := range demand {
		total := 0
		claimants := map[int]int{}
		for _, c := range claims {
			total += c.amount
			claimants[c.seat] += c.amount
		}
		if total == 0 {
			continue
		}
		if total <= ns.Bank[r] {
			for seat, amount := range claimants {
				ns.Players[seat].Hand[r] += amount
				ns.Bank[r] -= amount
			}
			continue
		}
		// Bank shortage.
		if ns.Config.Shortage == ShortageSingleClaimant && len(claimants) == 1 {
			for seat := range claimants {
				ns.Players[seat].Hand[r] += ns.Bank[r]
				ns.Bank[r] = 0
			}
		}
	}
}

func (ns *GameState) placeInitialSettlement(seat, node int) {
	ns.NodeOwner[node] = int8(seat)
	ns.NodeKind[node] = SettlementBuilding
	ns.Players[seat].SettlementsLeft--
	ns.PendingNode = node

	// The second settlement pays out its adjacent tiles.
	if ns.Phase == InitialPlacement2 {
		for _, tid := range ns.Board.Nodes[node].Tiles {
			tile := ns.Board.Tiles[tid]
			if !tile.Desert && ns.Bank[tile.Resource] > 0 {
				ns.Bank[tile.Resource]--
				ns.Players[seat].Hand[tile.Resource]++
			}
		}
	}
}

// placeInitialRoad finishes a placement pair and advances the snake
// order: forward through the seats, then backward, then the first
// seat rolls.
func (ns *GameState) placeInitialRoad(seat, edge int) {
	ns.EdgeOwner[edge] = int8(seat)
	ns.Players[seat].RoadsLeft--
	ns.PendingNode = -1

	last := len(ns.Players) - 1
	if ns.Phase == InitialPlacement1 {
		if seat == last {
			ns.Phase = InitialPlacement2 // Same seat places again
		} else {
			ns.Current = seat + 1
		}
		return
	}
	if seat == 0 {
		ns.Phase = RollPhase
		ns.Current = 0
		return
	}
	ns.Current = seat - 1
}

func (ns *GameState) placeSettlement(seat, node int) {
	ns.NodeOwner[node] = int8(seat)
	ns.NodeKind[node] = SettlementBuilding
	ns.Players[seat].SettlementsLeft--
	// A new junction can sever opponent road networks.
	ns.refreshLongestRoad()
}

func (ns *GameState) placeRoad(seat, edge int) {
	ns.EdgeOwner[edge] = int8(seat)
	ns.Players[seat].RoadsLeft--
	ns.refreshLongestRoad()
}

func (ns *GameState) pay(seat int, cost Hand) {
	ns.Players[seat].Hand.subtract(cost)
	ns.Bank.add(cost)
}

func (ns *GameState) spendDevCard(seat int, card DevCard) {
	ns.Players[seat].DevCards[card]--
	ns.Players[seat].PlayedDev = true
}

// moveRobber relocates the robber and resolves the steal: one card
// drawn uniformly from the victim's hand.
func (ns *GameState) moveRobber(seat, tile int, victim Color) {
	ns.Robber = tile
	if victim != "" {
		v := ns.seatOf(victim)
		hand := &ns.Players[v].Hand
		pick := ns.Config.Rand.Intn(hand.Total())
		for r := 0; r < NumResources; r++ {
			if pick < hand[r] {
				hand[r]--
				ns.Players[seat].Hand[r]++
				break
			}
			pick -= hand[r]
		}
	}
	ns.Phase = MainPhase
}

func (ns *GameState) settleTrade() {
	t := ns.Trade
	offerer := &ns.Players[t.Offerer]
	responder := &ns.Players[t.Responder]
	if t.Countered {
		// Responder gives CGive for the offerer's CGet.
		responder.Hand[t.CGive]--
		offerer.Hand[t.CGive]++
		offerer.Hand[t.CGet]--
		responder.Hand[t.CGet]++
	} else {
		offerer.Hand[t.Give]--
		responder.Hand[t.Give]++
		responder.Hand[t.Get]--
		offerer.Hand[t.Get]++
	}
	ns.Trade = nil
	ns.Phase = MainPhase
}

// rejectTrade declines the pending offer. A declined counter revives
// the original offer for the next seat; a declined offer moves to the
// next seat or, once every seat has answered, back to the main phase.
func (ns *GameState) rejectTrade() {
	t := ns.Trade
	if t.Countered {
		t.Countered = false
	}
	next := ns.nextSeat(t.Responder)
	if next == t.Offerer {
		ns.Trade = nil
		ns.Phase = MainPhase
		return
	}
	t.Responder = next
}

func (ns *GameState) endTurn(seat int) {
	p := &ns.Players[seat]
	p.PlayedDev = false
	for c := 0; c < NumDevCards; c++ {
		p.DevCards[c] += p.NewDevCards[c]
		p.NewDevCards[c] = 0
	}
	ns.Current = ns.nextSeat(seat)
	ns.Turn++
	ns.Dice = [2]int{}
	ns.Phase = RollPhase
}

// refreshLargestArmy re-evaluates the largest-army title after a
// knight play. Threshold 3; the incumbent keeps the title unless
// strictly exceeded.
func (ns *GameState) refreshLargestArmy(seat int) {
	count := ns.Players[seat].KnightsPlayed
	if ns.LargestArmyHolder == seat {
		ns.LargestArmySize = count
		return
	}
	if count >= 3 && count > ns.LargestArmySize {
		ns.LargestArmyHolder = seat
		ns.LargestArmySize = count
	}
}

// checkWinner transitions to game over the moment any seat's total
// reaches the threshold. A finished game never changes winners.
func (ns *GameState) checkWinner() {
	if ns.Won != "" {
		return
	}
	for seat := range ns.Players {
		if ns.VictoryPoints(seat) >= ns.Config.VictoryPoints {
			ns.Won = ns.Players[seat].Color
			ns.Phase = GameOverPhase
			return
		}
	}
}
