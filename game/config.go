package game

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// ShortagePolicy decides what happens when a production roll demands
// more of a resource than the bank holds.
type ShortagePolicy string

const (
	// ShortageNone: no claimant receives that resource type this roll.
	ShortageNone ShortagePolicy = "none"
	// ShortageSingleClaimant: a lone claimant still receives whatever
	// the bank has left; multiple claimants receive nothing.
	ShortageSingleClaimant ShortagePolicy = "single-claimant"
)

// Rand supplies the stochastic draws the rules engine needs (robber
// steals, default dice). State copies share the source, and parallel
// search applies moves from multiple goroutines, so implementations
// must be safe for concurrent use. The default source is.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Config enumerates recognized game options. The zero value is not
// usable; call Normalize or start from DefaultConfig.
type Config struct {
	VictoryPoints int            `yaml:"victory_points"` // Win threshold
	DiscardLimit  int            `yaml:"discard_limit"`  // Hand size that forces a discard on a 7
	MaxTurns      int            `yaml:"max_turns"`      // Driver-facing turn cap
	Shortage      ShortagePolicy `yaml:"shortage_policy"`
	ShuffleBoard  bool           `yaml:"shuffle_board"`
	Seed          int64          `yaml:"seed"` // Board layout and deck shuffle seed

	// Rand resolves stochastic effects at the moment a move is applied.
	// Dice overrides the two-die roll when set, letting tests script
	// exact sequences. Both are shared across state copies and called
	// from every search goroutine, so injected sources must be safe
	// for concurrent use.
	Rand Rand             `yaml:"-"`
	Dice func() (int, int) `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		VictoryPoints: 10,
		DiscardLimit:  7,
		MaxTurns:      1000,
		Shortage:      ShortageNone,
		ShuffleBoard:  true,
	}
}

// LoadConfig reads options from a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.VictoryPoints < 3 {
		return fmt.Errorf("victory_points %d too low: %w", c.VictoryPoints, ErrConfiguration)
	}
	if c.DiscardLimit < 1 {
		return fmt.Errorf("discard_limit %d: %w", c.DiscardLimit, ErrConfiguration)
	}
	switch c.Shortage {
	case ShortageNone, ShortageSingleClaimant:
	default:
		return fmt.Errorf("shortage_policy %q: %w", c.Shortage, ErrConfiguration)
	}
	return nil
}

// normalize fills unset runtime fields.
func (c *Config) normalize() {
	if c.Rand == nil {
		c.Rand = globalRand{}
	}
	if c.Dice == nil {
		r := c.Rand
		c.Dice = func() (int, int) {
			return r.Intn(6) + 1, r.Intn(6) + 1
		}
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = 1000
	}
}
