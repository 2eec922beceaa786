package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent episodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 100)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					c.AddEpisode()
					if j%5 == 0 {
						c.AddFullPlayout()
					}
				}
			}()
		}
		wg.Wait()

		metric := c.Complete()
		require.Equal(t, 400, metric.Episodes, "Every episode should be counted")
		require.Equal(t, 80, metric.FullPlayouts, "Every full playout should be counted")
		require.Equal(t, 4, metric.Goroutines, "The configuration is recorded")
		require.Equal(t, 100, metric.Cutoff, "The configuration is recorded")
		require.Positive(t, metric.Duration, "The elapsed time is recorded")
	})

	t.Run("last returns the completed metric", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 50)
		c.AddEpisode()
		completed := c.Complete()
		require.Equal(t, completed, c.Last(), "Last should repeat the completed metric")
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 50)
		c.AddEpisode()
		c.Complete()

		c.Start(1, 50)
		require.Equal(t, 0, c.Complete().Episodes, "A new search starts from zero")
	})

	t.Run("dummy collector stays silent", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2, 10)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete(), "The dummy records nothing")
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)

	t.Run("uses a timestamped directory", func(t *testing.T) {
		rel, err := filepath.Rel(root, w.Dir())
		require.NoError(t, err)
		_, err = time.Parse("2006-01-02T15-04-05", rel)
		require.NoError(t, err, "The output directory should be a timestamp")
	})

	t.Run("writes game records", func(t *testing.T) {
		now := time.Now().UTC()
		records := []GameRecord{{
			ID:    0,
			Seats: []string{"R", "MCTS:100"},
			GameMetric: GameMetric{
				Winner:     "RED",
				StartTime:  now,
				EndTime:    now.Add(time.Second),
				Duration:   time.Second,
				TotalMoves: 42,
			},
		}}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2, "A header and one record")
		require.Equal(t, []string{"id", "seats", "winner", "start_time", "end_time", "duration", "total_moves"}, rows[0])
		require.Equal(t, "R|MCTS:100", rows[1][1], "Seats join with a pipe")
		require.Equal(t, "RED", rows[1][2])
		require.Equal(t, "42", rows[1][6])
	})

	t.Run("writes move records", func(t *testing.T) {
		records := []MoveRecord{{
			Game: 0,
			MoveMetric: MoveMetric{
				Step: 3,
				Seat: 1,
				SearchMetric: SearchMetric{
					Goroutines:   4,
					Duration:     250 * time.Millisecond,
					Episodes:     100,
					Cutoff:       80,
					FullPlayouts: 7,
				},
			},
		}}
		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2, "A header and one record")
		require.Equal(t, []string{"game", "step", "seat", "goroutines", "duration", "episodes", "cutoff", "full_playouts"}, rows[0])
		require.Equal(t, []string{"0", "3", "1", "4", "250ms", "100", "80", "7"}, rows[1])
	})
}
