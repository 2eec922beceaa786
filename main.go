package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Dmi3yy/catanatron/experiments"
	"github.com/Dmi3yy/catanatron/game"
)

func main() {
	agentsFlag := flag.String("agents", "W,W", "comma-separated agent codes per seat (R, W, MM:d[:sample], AB:d[:sample], MCTS:n, MCTS:dur)")
	gamesFlag := flag.Int("games", 1, "number of games to play")
	seedFlag := flag.Int64("seed", 0, "board layout seed (incremented per game)")
	configFlag := flag.String("config", "", "YAML config path (default: $XDG_CONFIG_HOME/catanatron/config.yaml if present)")
	outFlag := flag.String("out", "", "directory for CSV game/move records (omit to skip)")
	verboseFlag := flag.Bool("v", false, "log every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verboseFlag {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	codes := strings.Split(*agentsFlag, ",")
	if len(codes) < 2 || len(codes) > 4 {
		log.Fatal().Msgf("need 2-4 agents, got %d", len(codes))
	}

	result, err := experiments.Run(experiments.Matchup{Codes: codes, Games: *gamesFlag}, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("matchup")
	}

	for seat, code := range codes {
		color := game.SeatColors[seat]
		fmt.Printf("%-8s %-12s %d wins\n", color, code, result.Wins[string(color)])
	}
	if draws := result.Wins[""]; draws > 0 {
		fmt.Printf("%-8s %-12s %d games\n", "-", "turn cap", draws)
	}

	if *outFlag != "" {
		dir, err := result.Report(*outFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("write records")
		}
		log.Info().Str("dir", dir).Msg("records written")
	}
}

// loadConfig reads the explicit config path, or the default xdg
// location when one exists, or falls back to defaults.
func loadConfig(path string) (game.Config, error) {
	if path != "" {
		return game.LoadConfig(path)
	}
	fallback := filepath.Join(xdg.ConfigHome, "catanatron", "config.yaml")
	if _, err := os.Stat(fallback); err == nil {
		return game.LoadConfig(fallback)
	}
	return game.DefaultConfig(), nil
}
