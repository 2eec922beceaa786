package game

import (
	"fmt"
	"math/rand"
	"sort"
)

// Hex is an axial coordinate for a tile (pointy-top orientation).
type Hex struct {
	Q, R int
}

// Tile is one hexagonal board cell.
type Tile struct {
	ID       int
	Coord    Hex
	Desert   bool
	Resource Resource // Meaningless when Desert is true
	Number   int      // Production number, 0 for the desert
	Nodes    [6]int   // Corner node IDs, clockwise from north
}

// Node is a settlement/city anchor point where up to three tiles meet.
type Node struct {
	ID    int
	Tiles []int // Adjacent tile IDs
	Edges []int // Incident edge IDs
	Nodes []int // Neighboring node IDs (one road away)
	Port  int   // Index into Board.Ports, -1 if none
}

// Edge is a road anchor point between two nodes.
type Edge struct {
	ID    int
	Nodes [2]int
	Tiles []int // Adjacent tile IDs (1 on the coast, 2 inland)
}

// Port is a maritime trade location bound to a coastal node pair.
type Port struct {
	Generic  bool     // 3:1 port
	Resource Resource // 2:1 resource, meaningless when Generic
	Nodes    [2]int
}

// Board is the static hex-grid topology. Immutable after generation.
type Board struct {
	Tiles  []Tile
	Nodes  []Node
	Edges  []Edge
	Ports  []Port
	Desert int // Desert tile ID
}

// Layout controls board generation.
type Layout struct {
	Shuffle bool  // Randomize resource, number and port placement
	Seed    int64 // Seed for the shuffle, 0 means unseeded
}

// Standard tile deck: 4 wood, 3 brick, 4 sheep, 4 wheat, 3 ore plus
// one desert (represented separately).
var standardResources = []Resource{
	Wood, Wood, Wood, Wood,
	Brick, Brick, Brick,
	Sheep, Sheep, Sheep, Sheep,
	Wheat, Wheat, Wheat, Wheat,
	Ore, Ore, Ore,
}

// Standard number token deck for the 18 non-desert tiles.
var standardNumbers = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// Standard port deck: 4 generic plus one 2:1 per resource.
var standardPorts = []Port{
	{Generic: true},
	{Resource: Sheep},
	{Generic: true},
	{Resource: Ore},
	{Resource: Wheat},
	{Generic: true},
	{Resource: Wood},
	{Resource: Brick},
	{Generic: true},
}

// Coastal edge offsets along the perimeter walk where ports sit.
// Spacing follows the standard frame: 3-3-4 repeated around the coast.
var portOffsets = []int{0, 3, 6, 10, 13, 16, 20, 23, 26}

// corner identifies a node canonically: every grid corner is the north
// or south corner of exactly one hex.
type corner struct {
	q, r  int
	north bool
}

// NewBoard generates the 19-tile board: 54 nodes, 72 edges, 9 ports.
func NewBoard(layout Layout) *Board {
	b := &Board{Desert: -1}

	coords := hexCoords(2)
	resources := append([]Resource(nil), standardResources...)
	numbers := append([]int(nil), standardNumbers...)
	ports := append([]Port(nil), standardPorts...)
	desertAt := len(coords) / 2 // Center tile in the fixed layout

	if layout.Shuffle {
		rng := rand.New(rand.NewSource(layout.Seed))
		rng.Shuffle(len(resources), func(i, j int) {
			resources[i], resources[j] = resources[j], resources[i]
		})
		rng.Shuffle(len(numbers), func(i, j int) {
			numbers[i], numbers[j] = numbers[j], numbers[i]
		})
		rng.Shuffle(len(ports), func(i, j int) {
			ports[i], ports[j] = ports[j], ports[i]
		})
		desertAt = rng.Intn(len(coords))
	}

	nodeIDs := make(map[corner]int)
	edgeIDs := make(map[[2]int]int)

	ri, ni := 0, 0
	for tid, coord := range coords {
		tile := Tile{ID: tid, Coord: coord}
		if tid == desertAt {
			tile.Desert = true
			b.Desert = tid
		} else {
			tile.Resource = resources[ri]
			tile.Number = numbers[ni]
			ri++
			ni++
		}
		var nodes [6]int
		for i, c := range tileCorners(coord) {
			nodes[i] = b.internNode(nodeIDs, c)
			b.Nodes[nodes[i]].Tiles = append(b.Nodes[nodes[i]].Tiles, tid)
		}
		tile.Nodes = nodes
		b.Tiles = append(b.Tiles, tile)
		for i := range nodes {
			a, z := nodes[i], nodes[(i+1)%6]
			eid := b.internEdge(edgeIDs, a, z)
			b.Edges[eid].Tiles = appendUnique(b.Edges[eid].Tiles, tid)
		}
	}

	b.placePorts(ports)
	return b
}

// tileCorners lists the six corners of a hex clockwise from the north
// corner in canonical form.
func tileCorners(h Hex) [6]corner {
	return [6]corner{
		{h.Q, h.R, true},          // N
		{h.Q + 1, h.R - 1, false}, // NE
		{h.Q, h.R + 1, true},      // SE
		{h.Q, h.R, false},         // S
		{h.Q - 1, h.R + 1, true},  // SW
		{h.Q, h.R - 1, false},     // NW
	}
}

// hexCoords lists all axial coordinates within the given radius in a
// deterministic row-major order.
func hexCoords(radius int) []Hex {
	var coords []Hex
	for r := -radius; r <= radius; r++ {
		for q := -radius; q <= radius; q++ {
			if abs(q+r) <= radius {
				coords = append(coords, Hex{q, r})
			}
		}
	}
	return coords
}

func (b *Board) internNode(ids map[corner]int, c corner) int {
	if id, ok := ids[c]; ok {
		return id
	}
	id := len(b.Nodes)
	ids[c] = id
	b.Nodes = append(b.Nodes, Node{ID: id, Port: -1})
	return id
}

func (b *Board) internEdge(ids map[[2]int]int, a, z int) int {
	key := [2]int{min(a, z), max(a, z)}
	if id, ok := ids[key]; ok {
		return id
	}
	id := len(b.Edges)
	ids[key] = id
	b.Edges = append(b.Edges, Edge{ID: id, Nodes: key})
	b.Nodes[a].Edges = append(b.Nodes[a].Edges, id)
	b.Nodes[z].Edges = append(b.Nodes[z].Edges, id)
	b.Nodes[a].Nodes = appendUnique(b.Nodes[a].Nodes, z)
	b.Nodes[z].Nodes = appendUnique(b.Nodes[z].Nodes, a)
	return id
}

// placePorts walks the coast and binds the port deck to fixed offsets
// along the perimeter.
func (b *Board) placePorts(ports []Port) {
	coast := b.coastalWalk()
	for i, offset := range portOffsets {
		edge := b.Edges[coast[offset]]
		port := ports[i]
		port.Nodes = edge.Nodes
		pid := len(b.Ports)
		b.Ports = append(b.Ports, port)
		b.Nodes[edge.Nodes[0]].Port = pid
		b.Nodes[edge.Nodes[1]].Port = pid
	}
}

// coastalWalk returns the 30 coastal edge IDs in perimeter order.
func (b *Board) coastalWalk() []int {
	coastal := make(map[int]bool)
	start := -1
	for _, e := range b.Edges {
		if len(e.Tiles) == 1 {
			coastal[e.ID] = true
			if start == -1 || e.ID < start {
				start = e.ID
			}
		}
	}

	walk := []int{start}
	visited := map[int]bool{start: true}
	at := b.Edges[start].Nodes[1]
	for len(walk) < len(coastal) {
		next := -1
		for _, eid := range b.Nodes[at].Edges {
			if coastal[eid] && !visited[eid] {
				next = eid
				break
			}
		}
		if next == -1 {
			panic(fmt.Sprintf("coastal walk stuck at node %d", at))
		}
		visited[next] = true
		walk = append(walk, next)
		if b.Edges[next].Nodes[0] == at {
			at = b.Edges[next].Nodes[1]
		} else {
			at = b.Edges[next].Nodes[0]
		}
	}
	return walk
}

// AdjacentTiles returns the tiles touching a node.
func (b *Board) AdjacentTiles(node int) ([]Tile, error) {
	if node < 0 || node >= len(b.Nodes) {
		return nil, fmt.Errorf("node %d: %w", node, ErrInvalidReference)
	}
	tiles := make([]Tile, 0, len(b.Nodes[node].Tiles))
	for _, tid := range b.Nodes[node].Tiles {
		tiles = append(tiles, b.Tiles[tid])
	}
	return tiles, nil
}

// EdgeNodes returns the two endpoints of an edge.
func (b *Board) EdgeNodes(edge int) (Node, Node, error) {
	if edge < 0 || edge >= len(b.Edges) {
		return Node{}, Node{}, fmt.Errorf("edge %d: %w", edge, ErrInvalidReference)
	}
	e := b.Edges[edge]
	return b.Nodes[e.Nodes[0]], b.Nodes[e.Nodes[1]], nil
}

// NodePort returns the port reachable from a node, or nil.
func (b *Board) NodePort(node int) (*Port, error) {
	if node < 0 || node >= len(b.Nodes) {
		return nil, fmt.Errorf("node %d: %w", node, ErrInvalidReference)
	}
	if pid := b.Nodes[node].Port; pid != -1 {
		return &b.Ports[pid], nil
	}
	return nil, nil
}

// otherEnd returns the endpoint of edge that is not node.
func (b *Board) otherEnd(edge, node int) int {
	e := b.Edges[edge]
	if e.Nodes[0] == node {
		return e.Nodes[1]
	}
	return e.Nodes[0]
}

// tilesByNumber lists tile IDs producing on the given dice sum, sorted
// for determinism.
func (b *Board) tilesByNumber(sum int) []int {
	var tiles []int
	for _, t := range b.Tiles {
		if !t.Desert && t.Number == sum {
			tiles = append(tiles, t.ID)
		}
	}
	sort.Ints(tiles)
	return tiles
}

func appendUnique(slice []int, item int) []int {
	for _, v := range slice {
		if v == item {
			return slice
		}
	}
	return append(slice, item)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
