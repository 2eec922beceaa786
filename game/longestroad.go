package game

// longestRoadLength computes the seat's longest simple road path. A
// segment counts once; a junction occupied by an opponent's building
// ends the path there, so a network cut by an opponent settlement
// contributes two independent candidates.
func (gs *GameState) longestRoadLength(seat int) int {
	starts := map[int]bool{}
	for eid, owner := range gs.EdgeOwner {
		if int(owner) == seat {
			starts[gs.Board.Edges[eid].Nodes[0]] = true
			starts[gs.Board.Edges[eid].Nodes[1]] = true
		}
	}

	used := make([]bool, len(gs.Board.Edges))
	best := 0
	for node := range starts {
		if l := gs.walkRoads(seat, node, used); l > best {
			best = l
		}
	}
	return best
}

func (gs *GameState) walkRoads(seat, node int, used []bool) int {
	best := 0
	for _, eid := range gs.Board.Nodes[node].Edges {
		if used[eid] || int(gs.EdgeOwner[eid]) != seat {
			continue
		}
		used[eid] = true
		length := 1
		next := gs.Board.otherEnd(eid, node)
		// An opponent building blocks continuation past the junction.
		if owner := int(gs.NodeOwner[next]); owner == -1 || owner == seat {
			length += gs.walkRoads(seat, next, used)
		}
		used[eid] = false
		if length > best {
			best = length
		}
	}
	return best
}

// refreshLongestRoad recomputes every seat's longest road and
// re-evaluates the title. Threshold 5; the incumbent keeps the title
// unless strictly exceeded, and loses it outright if cut below 5. A
// freshly contested title with tied candidates stays with no one.
func (ns *GameState) refreshLongestRoad() {
	lengths := make([]int, len(ns.Players))
	for seat := range ns.Players {
		lengths[seat] = ns.longestRoadLength(seat)
	}

	holder := ns.LongestRoadHolder
	if holder != -1 && lengths[holder] < 5 {
		holder = -1
	}

	bestSeat, bestLen := -1, 4
	for seat, l := range lengths {
		if l > bestLen {
			bestSeat, bestLen = seat, l
		} else if l == bestLen && seat == holder {
			bestSeat = seat // Incumbency tie-break
		}
	}

	switch {
	case bestSeat == -1:
		ns.LongestRoadHolder = -1
		ns.LongestRoadLen = 0
	case holder != -1 && lengths[holder] == bestLen:
		// Incumbent keeps the title unless strictly exceeded.
		ns.LongestRoadHolder = holder
		ns.LongestRoadLen = lengths[holder]
	case countAt(lengths, bestLen) > 1 && holder == -1:
		// Tie between fresh candidates: nobody holds the title.
		ns.LongestRoadHolder = -1
		ns.LongestRoadLen = 0
	default:
		ns.LongestRoadHolder = bestSeat
		ns.LongestRoadLen = bestLen
	}
}

func countAt(lengths []int, l int) int {
	n := 0
	for _, v := range lengths {
		if v == l {
			n++
		}
	}
	return n
}
