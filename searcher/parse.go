package searcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse builds an agent from a short code:
//
//	R           uniform random
//	W           weighted random
//	MM:2        minimax, depth 2
//	AB:2        alpha-beta with move ordering, depth 2
//	MCTS:500    MCTS, 500 episodes
//	MCTS:250ms  MCTS, 250ms wall-clock budget
//
// MM and AB codes accept an optional dice model suffix: "expect"
// expands every roll sum (the default), "sample" draws a single roll
// per chance node, e.g. AB:2:sample. MCTS codes accept an optional
// goroutine count suffix, e.g. MCTS:500:8.
func Parse(code string) (Agent, error) {
	parts := strings.Split(strings.TrimSpace(code), ":")
	switch strings.ToUpper(parts[0]) {
	case "R":
		return NewRandom(), nil
	case "W":
		return NewWeighted(), nil
	case "MM", "AB":
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("agent code %q: want depth, e.g. %s:2", code, parts[0])
		}
		depth, err := strconv.Atoi(parts[1])
		if err != nil || depth < 1 {
			return nil, fmt.Errorf("agent code %q: bad depth %q", code, parts[1])
		}
		var options []MinimaxOption
		if len(parts) == 3 {
			switch strings.ToLower(parts[2]) {
			case "expect":
			case "sample":
				options = append(options, WithChanceModel(SampleModel))
			default:
				return nil, fmt.Errorf("agent code %q: bad dice model %q, want expect or sample", code, parts[2])
			}
		}
		if strings.EqualFold(parts[0], "AB") {
			return NewAlphaBeta(depth, options...), nil
		}
		return NewMinimax(depth, options...), nil
	case "MCTS":
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("agent code %q: want budget, e.g. MCTS:500 or MCTS:250ms", code)
		}
		goroutines := 1
		if len(parts) == 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("agent code %q: bad goroutine count %q", code, parts[2])
			}
			goroutines = n
		}
		if episodes, err := strconv.Atoi(parts[1]); err == nil {
			if episodes < 1 {
				return nil, fmt.Errorf("agent code %q: bad episode count", code)
			}
			return NewMCTS(goroutines, WithEpisodes(episodes)), nil
		}
		duration, err := time.ParseDuration(parts[1])
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("agent code %q: bad budget %q", code, parts[1])
		}
		return NewMCTS(goroutines, WithDuration(duration)), nil
	default:
		return nil, fmt.Errorf("unknown agent code %q", code)
	}
}
