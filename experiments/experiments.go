package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Dmi3yy/catanatron/engine"
	"github.com/Dmi3yy/catanatron/experiments/metrics"
	"github.com/Dmi3yy/catanatron/game"
	"github.com/Dmi3yy/catanatron/searcher"
)

// Matchup pits a fixed seating of agents against each other for a
// number of games.
type Matchup struct {
	Codes []string // Agent code per seat
	Games int
}

// Result tallies a finished matchup.
type Result struct {
	Wins  map[string]int // By color, "" counts turn-cap draws
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Run plays the matchup to completion. Each game gets a distinct
// board seed so agents face varied layouts.
func Run(m Matchup, cfg game.Config) (Result, error) {
	result := Result{Wins: map[string]int{}}

	for i := 0; i < m.Games; i++ {
		agents := make([]searcher.Agent, len(m.Codes))
		for seat, code := range m.Codes {
			agent, err := searcher.Parse(code)
			if err != nil {
				return result, err
			}
			agents[seat] = agent
		}

		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + int64(i)

		e, err := engine.Local(agents, gameCfg)
		if err != nil {
			return result, err
		}
		log.Info().Int("game", i+1).Strs("agents", m.Codes).Msg("game starting")
		winner, moveMetrics, gameMetric := e.Run()

		result.Wins[winner]++
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         i,
			Seats:      m.Codes,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: i, MoveMetric: mm})
		}
	}
	return result, nil
}

// Report writes CSV records under outDir and returns the directory
// actually used.
func (r Result) Report(outDir string) (string, error) {
	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(r.Games); err != nil {
		return "", fmt.Errorf("report games: %w", err)
	}
	if err := writer.WriteMoveRecords(r.Moves); err != nil {
		return "", fmt.Errorf("report moves: %w", err)
	}
	return writer.Dir(), nil
}
