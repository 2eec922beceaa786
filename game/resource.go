package game

// Resource is one of the five tradeable resource types.
type Resource int

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore
)

const NumResources = 5

var resourceNames = [NumResources]string{"WOOD", "BRICK", "SHEEP", "WHEAT", "ORE"}

func (r Resource) String() string {
	if r < 0 || int(r) >= NumResources {
		return "UNKNOWN"
	}
	return resourceNames[r]
}

// Hand is a count of cards per resource type. It doubles as the bank
// supply and as a discard/grant selection.
type Hand [NumResources]int

func (h Hand) Total() int {
	sum := 0
	for _, n := range h {
		sum += n
	}
	return sum
}

// Covers reports whether h has at least the counts in cost.
func (h Hand) Covers(cost Hand) bool {
	for r, n := range cost {
		if h[r] < n {
			return false
		}
	}
	return true
}

func (h *Hand) add(other Hand) {
	for r, n := range other {
		h[r] += n
	}
}

func (h *Hand) subtract(other Hand) {
	for r, n := range other {
		h[r] -= n
	}
}

// DevCard is a development card type.
type DevCard int

const (
	Knight DevCard = iota
	VictoryPointCard
	RoadBuilding
	YearOfPlenty
	Monopoly
)

const NumDevCards = 5

var devCardNames = [NumDevCards]string{"KNIGHT", "VICTORY_POINT", "ROAD_BUILDING", "YEAR_OF_PLENTY", "MONOPOLY"}

func (d DevCard) String() string {
	if d < 0 || int(d) >= NumDevCards {
		return "UNKNOWN"
	}
	return devCardNames[d]
}

// Standard deck composition: 14 knights, 5 victory points, 2 of each
// progress card.
var devDeckCounts = [NumDevCards]int{14, 5, 2, 2, 2}

// Building costs.
var (
	RoadCost       = Hand{Wood: 1, Brick: 1}
	SettlementCost = Hand{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	CityCost       = Hand{Wheat: 2, Ore: 3}
	DevCardCost    = Hand{Sheep: 1, Wheat: 1, Ore: 1}
)

// BankSupply is the per-resource count the bank starts with.
const BankSupply = 19
