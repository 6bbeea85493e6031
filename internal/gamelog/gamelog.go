// Package gamelog summarizes semicolon-delimited play logs
// (name;level;score;minutes). Unlike the receipt parser, this reader counts
// the malformed lines it skips and reports them in the summary.
package gamelog

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Play is one valid log record.
type Play struct {
	Name    string
	Level   string
	Score   int
	Minutes int
}

// Summary aggregates one parsed log.
type Summary struct {
	TotalPlays   int
	Players      int
	MeanScore    float64
	BestByPlayer map[string]int
}

// ParseLog reads plays from r. Blank lines and '#' comments are ignored;
// structurally malformed lines are skipped and counted.
func ParseLog(r io.Reader) (plays []Play, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) != 4 {
			skipped++
			continue
		}
		score, errScore := strconv.Atoi(strings.TrimSpace(parts[2]))
		minutes, errMin := strconv.Atoi(strings.TrimSpace(parts[3]))
		if errScore != nil || errMin != nil {
			skipped++
			continue
		}
		plays = append(plays, Play{
			Name:    strings.TrimSpace(parts[0]),
			Level:   strings.TrimSpace(parts[1]),
			Score:   score,
			Minutes: minutes,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read log: %w", err)
	}
	return plays, skipped, nil
}

// Summarize computes the aggregate figures and each player's best score.
func Summarize(plays []Play) Summary {
	best := make(map[string]int)
	sum := 0
	for _, p := range plays {
		sum += p.Score
		if cur, ok := best[p.Name]; !ok || p.Score > cur {
			best[p.Name] = p.Score
		}
	}
	mean := 0.0
	if len(plays) > 0 {
		mean = math.Round(float64(sum)/float64(len(plays))*100) / 100
	}
	return Summary{
		TotalPlays:   len(plays),
		Players:      len(best),
		MeanScore:    mean,
		BestByPlayer: best,
	}
}

// WriteSummary writes the general report artifact.
func WriteSummary(path string, s Summary, skipped int) error {
	var b strings.Builder
	b.WriteString("RESUMEN de las partidas\n\n")
	fmt.Fprintf(&b, "Todas las partidas: %d\n", s.TotalPlays)
	fmt.Fprintf(&b, "Jugadores distintos: %d\n", s.Players)
	fmt.Fprintf(&b, "Media de puntos: %g\n", s.MeanScore)
	fmt.Fprintf(&b, "Lineas saltadas: %d\n", skipped)
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Ranking returns players ordered by best score descending, name ascending
// on ties so the output is deterministic.
func Ranking(best map[string]int) []Play {
	out := make([]Play, 0, len(best))
	for name, score := range best {
		out = append(out, Play{Name: name, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WriteRanking writes the best-score-per-player artifact.
func WriteRanking(path string, best map[string]int) error {
	var b strings.Builder
	b.WriteString("Mejores jugadores\n\n")
	for _, p := range Ranking(best) {
		fmt.Fprintf(&b, "%s - %d\n", p.Name, p.Score)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
