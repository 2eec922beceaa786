package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Dmi3yy/catanatron/experiments/metrics"
	"github.com/Dmi3yy/catanatron/game"
	"github.com/Dmi3yy/catanatron/searcher"
)

// Engine drives one game: it asks the seat to act for a move, applies
// it, and repeats until a winner or the turn cap. The canonical state
// advances strictly one move at a time; agents explore on copies.
type Engine struct {
	State  *game.GameState
	Agents []searcher.Agent
	Moves  int
}

// metricSource is implemented by agents that track search statistics.
type metricSource interface {
	SearchMetric() metrics.SearchMetric
}

// Local creates an engine with one agent per seat.
func Local(agents []searcher.Agent, cfg game.Config) (*Engine, error) {
	if len(agents) < 2 || len(agents) > 4 {
		return nil, fmt.Errorf("%d agents: %w", len(agents), game.ErrConfiguration)
	}
	state, err := game.NewGameState(game.SeatColors[:len(agents)], cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{State: state, Agents: agents}, nil
}

// Run executes the game loop to completion and returns the winner
// ("" if the turn cap hit first) with the per-move search metrics.
func (e *Engine) Run() (string, []metrics.MoveMetric, metrics.GameMetric) {
	start := time.Now()
	var moveMetrics []metrics.MoveMetric

	maxTurns := e.State.Config.MaxTurns
	for e.State.Winner() == "" && e.State.Turn < maxTurns {
		seat := e.seatToAct()
		agent := e.Agents[seat]

		move := agent.FindMove(e.State)
		next, err := e.State.Apply(move)
		if err != nil {
			// A buggy agent forfeits the choice, not the game.
			log.Warn().Err(err).Int("seat", seat).Msgf("agent chose %v; falling back to first legal move", move)
			legal := e.State.LegalMoves()
			if len(legal) == 0 {
				break
			}
			move = legal[0]
			next = e.State.Play(move).(*game.GameState)
		}

		if source, ok := agent.(metricSource); ok {
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         e.Moves,
				Seat:         seat,
				SearchMetric: source.SearchMetric(),
			})
		}

		log.Debug().
			Int("seat", seat).
			Str("color", e.State.Player()).
			Stringer("phase", e.State.Phase).
			Msgf("move %d: %v", e.Moves, move)

		e.State = next
		e.Moves++
	}

	winner := e.State.Winner()
	end := time.Now()
	log.Info().
		Str("winner", winner).
		Int("moves", e.Moves).
		Int("turns", e.State.Turn).
		Dur("elapsed", end.Sub(start)).
		Msg("game finished")
	return winner, moveMetrics, metrics.GameMetric{
		Winner:     winner,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: e.Moves,
	}
}

func (e *Engine) seatToAct() int {
	for seat, p := range e.State.Players {
		if string(p.Color) == e.State.Player() {
			return seat
		}
	}
	panic("no seat to act")
}
