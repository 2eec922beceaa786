package game

// diceFrequency is the canonical 36-outcome table: number of two-die
// combinations producing each sum, divided by 36.
var diceFrequency = [13]float64{
	2:  1.0 / 36,
	3:  2.0 / 36,
	4:  3.0 / 36,
	5:  4.0 / 36,
	6:  5.0 / 36,
	7:  6.0 / 36,
	8:  5.0 / 36,
	9:  4.0 / 36,
	10: 3.0 / 36,
	11: 2.0 / 36,
	12: 1.0 / 36,
}

// DiceProbability returns the chance of rolling the given sum.
func DiceProbability(sum int) float64 {
	if sum < 2 || sum > 12 {
		return 0
	}
	return diceFrequency[sum]
}

// Feature indices into the vector returned by Features.
const (
	FeatProduction = iota
	FeatVariety
	FeatPublicVP
	FeatTotalVP
	FeatLongestRoad
	FeatArmySize
	FeatRoadsLeft
	FeatSettlementsLeft
	FeatCitiesLeft
	FeatHandSize
	FeatBuildable
	NumFeatures
)

// Features projects a state into a numeric vector from one seat's
// perspective. Pure and deterministic: identical states produce
// identical vectors.
func (gs *GameState) Features(color Color) []float64 {
	seat := gs.seatOf(color)
	if seat == -1 {
		return make([]float64, NumFeatures)
	}
	p := &gs.Players[seat]

	f := make([]float64, NumFeatures)
	f[FeatProduction] = gs.productionExpectation(seat)
	f[FeatVariety] = float64(gs.resourceVariety(seat))
	f[FeatPublicVP] = float64(gs.PublicVictoryPoints(seat))
	f[FeatTotalVP] = float64(gs.VictoryPoints(seat))
	f[FeatLongestRoad] = float64(gs.longestRoadLength(seat))
	f[FeatArmySize] = float64(p.KnightsPlayed)
	f[FeatRoadsLeft] = float64(p.RoadsLeft)
	f[FeatSettlementsLeft] = float64(p.SettlementsLeft)
	f[FeatCitiesLeft] = float64(p.CitiesLeft)
	f[FeatHandSize] = float64(p.Hand.Total())
	f[FeatBuildable] = gs.buildableProduction(seat)
	return f
}

// productionExpectation is the probability-weighted resource income
// per roll for a seat's buildings, robber ignored.
func (gs *GameState) productionExpectation(seat int) float64 {
	total := 0.0
	for node, owner := range gs.NodeOwner {
		if int(owner) != seat {
			continue
		}
		mult := 1.0
		if gs.NodeKind[node] == CityBuilding {
			mult = 2.0
		}
		total += mult * gs.nodeProduction(node)
	}
	return total
}

// nodeProduction is the summed dice probability of the tiles around a
// node.
func (gs *GameState) nodeProduction(node int) float64 {
	total := 0.0
	for _, tid := range gs.Board.Nodes[node].Tiles {
		tile := gs.Board.Tiles[tid]
		if !tile.Desert {
			total += diceFrequency[tile.Number]
		}
	}
	return total
}

// resourceVariety counts distinct resource types a seat's buildings
// touch.
func (gs *GameState) resourceVariety(seat int) int {
	var seen [NumResources]bool
	for node, owner := range gs.NodeOwner {
		if int(owner) != seat {
			continue
		}
		for _, tid := range gs.Board.Nodes[node].Tiles {
			tile := gs.Board.Tiles[tid]
			if !tile.Desert {
				seen[tile.Resource] = true
			}
		}
	}
	count := 0
	for _, s := range seen {
		if s {
			count++
		}
	}
	return count
}

// buildableProduction scores the open nodes the seat could settle,
// now or by extending roads: the best production among nodes
// reachable from the seat's network that satisfy the distance rule.
func (gs *GameState) buildableProduction(seat int) float64 {
	best := 0.0
	for node := range gs.Board.Nodes {
		if gs.NodeOwner[node] != -1 || gs.neighborOccupied(node) {
			continue
		}
		if !gs.nearNetwork(node, seat) {
			continue
		}
		if p := gs.nodeProduction(node); p > best {
			best = p
		}
	}
	return best
}

// nearNetwork reports whether a node touches the seat's roads or is
// one edge away from them.
func (gs *GameState) nearNetwork(node, seat int) bool {
	if gs.touchesOwnRoad(node, seat) {
		return true
	}
	for _, adj := range gs.Board.Nodes[node].Nodes {
		if gs.touchesOwnRoad(adj, seat) {
			return true
		}
	}
	return false
}

// EvaluatePosition scores the state between -1 and 1 from the player
// to act: victory progress, production and variety against the
// strongest opponent.
func EvaluatePosition(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	return gs.evaluateSeat(gs.actor())
}

// EvaluateFor scores the state between -1 and 1 from a fixed color's
// perspective, regardless of whose turn it is.
func EvaluateFor(s State, color Color) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	seat := gs.seatOf(color)
	if seat == -1 {
		return 0
	}
	return gs.evaluateSeat(seat)
}

func (gs *GameState) evaluateSeat(seat int) float64 {
	return normalize(gs.weightedScore(seat), gs.bestOpponentScore(seat))
}

// weightedScore blends victory points with production strength.
func (gs *GameState) weightedScore(seat int) float64 {
	color := gs.Players[seat].Color
	f := gs.Features(color)
	return float64(gs.VictoryPoints(seat)) +
		3.0*f[FeatProduction] +
		0.2*f[FeatVariety] +
		0.5*f[FeatBuildable]
}

func (gs *GameState) bestOpponentScore(seat int) float64 {
	best := 0.0
	for other := range gs.Players {
		if other == seat {
			continue
		}
		if s := gs.weightedScore(other); s > best {
			best = s
		}
	}
	return best
}

// normalize converts two values into a score between -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
