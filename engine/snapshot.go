package engine

import "github.com/Dmi3yy/catanatron/game"

// Snapshot is the read-only projection outer layers (web, analytics,
// UI) transform into their own formats. It copies everything it
// exposes; mutating a snapshot never touches the live state.
type Snapshot struct {
	Phase       string
	Turn        int
	Dice        [2]int
	ActorColor  game.Color
	RobberTile  int
	Winner      game.Color
	Players     []PlayerSnapshot
	Nodes       []NodeSnapshot
	Edges       []EdgeSnapshot
	LongestRoad TitleSnapshot
	LargestArmy TitleSnapshot
}

type PlayerSnapshot struct {
	Color           game.Color
	PublicVP        int
	VictoryPoints   int // Includes hidden VP cards; engine-side view
	ResourceCards   int
	DevCards        int
	KnightsPlayed   int
	RoadsLeft       int
	SettlementsLeft int
	CitiesLeft      int
	Production      float64 // Probability-weighted expected income
	Variety         int
}

type NodeSnapshot struct {
	Node     int
	Owner    game.Color
	City     bool
	PortType string // "", "3:1" or a resource name
}

type EdgeSnapshot struct {
	Edge  int
	Owner game.Color
}

type TitleSnapshot struct {
	Holder game.Color // "" if unheld
	Size   int
}

// Take builds a snapshot of the current state.
func Take(gs *game.GameState) Snapshot {
	snap := Snapshot{
		Phase:      gs.Phase.String(),
		Turn:       gs.Turn,
		Dice:       gs.Dice,
		ActorColor: gs.ActorColor(),
		RobberTile: gs.Robber,
		Winner:     gs.Won,
	}

	for seat := range gs.Players {
		p := &gs.Players[seat]
		features := gs.Features(p.Color)
		devTotal := 0
		for c := 0; c < game.NumDevCards; c++ {
			devTotal += p.DevCards[c] + p.NewDevCards[c]
		}
		snap.Players = append(snap.Players, PlayerSnapshot{
			Color:           p.Color,
			PublicVP:        gs.PublicVictoryPoints(seat),
			VictoryPoints:   gs.VictoryPoints(seat),
			ResourceCards:   p.Hand.Total(),
			DevCards:        devTotal,
			KnightsPlayed:   p.KnightsPlayed,
			RoadsLeft:       p.RoadsLeft,
			SettlementsLeft: p.SettlementsLeft,
			CitiesLeft:      p.CitiesLeft,
			Production:      features[game.FeatProduction],
			Variety:         int(features[game.FeatVariety]),
		})
	}

	for node, owner := range gs.NodeOwner {
		if owner == -1 {
			continue
		}
		ns := NodeSnapshot{
			Node:  node,
			Owner: gs.Players[owner].Color,
			City:  gs.NodeKind[node] == game.CityBuilding,
		}
		if port, _ := gs.Board.NodePort(node); port != nil {
			if port.Generic {
				ns.PortType = "3:1"
			} else {
				ns.PortType = port.Resource.String()
			}
		}
		snap.Nodes = append(snap.Nodes, ns)
	}

	for edge, owner := range gs.EdgeOwner {
		if owner == -1 {
			continue
		}
		snap.Edges = append(snap.Edges, EdgeSnapshot{
			Edge:  edge,
			Owner: gs.Players[owner].Color,
		})
	}

	if gs.LongestRoadHolder != -1 {
		snap.LongestRoad = TitleSnapshot{
			Holder: gs.Players[gs.LongestRoadHolder].Color,
			Size:   gs.LongestRoadLen,
		}
	}
	if gs.LargestArmyHolder != -1 {
		snap.LargestArmy = TitleSnapshot{
			Holder: gs.Players[gs.LargestArmyHolder].Color,
			Size:   gs.LargestArmySize,
		}
	}
	return snap
}
