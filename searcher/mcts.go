package searcher

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/Dmi3yy/catanatron/experiments/metrics"
	"github.com/Dmi3yy/catanatron/game"
)

type Option func(m *MCTS)

// MCTS is a tree-parallel Monte Carlo Tree Search agent: goroutines
// share one tree guarded by per-node locks and virtual loss, run
// selection/expansion/rollout/backup episodes until the budget is
// spent, then pick the most visited root move.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	rollout    Policy
	metrics    metrics.Collector
	root       *decision
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithRolloutPolicy(policy Policy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.rollout = policy
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluatePosition,
		rollout:    WeightedPolicy(DefaultWeights),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		m.goroutines = 1
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("must specify search episodes or duration")
	}
	return m
}

// FindMove searches from state and returns the most visited root move.
// The budget is cooperative: when it runs out the best move found so
// far is returned.
func (m *MCTS) FindMove(state game.State) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 1 {
		return moves[0]
	}

	m.root = newDecision(nil, state)
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	m.metrics.Complete()

	return m.root.findBestMove()
}

// SearchMetric reports the statistics of the last search.
func (m *MCTS) SearchMetric() metrics.SearchMetric {
	return m.metrics.Last()
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan struct{}, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}
	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	player, score := m.playout(newState)
	backup(newNode, player, score)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	parent := Node(root)
	child, state, selected := parent.SelectOrExpand(state)
	for selected && child != parent {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// playout runs the default policy to a terminal state or the cutoff,
// returning a perspective player and their score.
func (m *MCTS) playout(state game.State) (string, float64) {
	depth := 0
	moves := state.LegalMoves()
	for len(moves) > 0 && depth < m.cutoff {
		move := m.rollout(state, moves)
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		m.metrics.AddFullPlayout()
		return state.Winner(), Win
	}
	// At the cutoff, score the state for the player to act
	return state.Player(), m.evaluate(state)
}

func backup(newNode Node, player string, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(player, score)
	}
}

// Policy picks one move during a rollout.
type Policy func(state game.State, moves []game.Move) game.Move

// RandomPolicy selects uniformly.
func RandomPolicy(_ game.State, moves []game.Move) game.Move {
	return moves[rand.Intn(len(moves))]
}

// DefaultWeights bias rollouts toward building and away from noise
// moves, which shortens playouts considerably.
var DefaultWeights = map[game.ActionType]float64{
	game.BuildCityAction:       16,
	game.BuildSettlementAction: 12,
	game.BuildRoadAction:       4,
	game.BuyDevCardAction:      3,
	game.PlayKnightAction:      2,
	game.BankTradeAction:       2,
	game.OfferTradeAction:      0.2,
	game.CounterTradeAction:    0.2,
	game.EndTurnAction:         1,
}

// WeightedPolicy selects proportionally to static per-action-type
// weights; unlisted types weigh 1.
func WeightedPolicy(weights map[game.ActionType]float64) Policy {
	return func(_ game.State, moves []game.Move) game.Move {
		total := 0.0
		for _, move := range moves {
			total += moveWeight(weights, move)
		}
		pick := rand.Float64() * total
		for _, move := range moves {
			pick -= moveWeight(weights, move)
			if pick <= 0 {
				return move
			}
		}
		return moves[len(moves)-1]
	}
}

func moveWeight(weights map[game.ActionType]float64, move game.Move) float64 {
	gm, ok := move.(*game.GameMove)
	if !ok {
		return 1
	}
	if w, ok := weights[gm.Action]; ok {
		return w
	}
	return 1
}
