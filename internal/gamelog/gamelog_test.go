package gamelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logFixture = `# registro de partidas
ana;nivel1;120;15
luis;nivel2;200;30

ana;nivel2;180;20
rota sin campos
pepe;nivel1;cien;10
luis;nivel1;90;12
`

func TestParseLog(t *testing.T) {
	plays, skipped, err := ParseLog(strings.NewReader(logFixture))
	require.NoError(t, err)

	assert.Len(t, plays, 4)
	assert.Equal(t, 2, skipped, "short line and non-numeric score are counted")
	assert.Equal(t, Play{Name: "ana", Level: "nivel1", Score: 120, Minutes: 15}, plays[0])
}

func TestParseLogTrimsFields(t *testing.T) {
	plays, skipped, err := ParseLog(strings.NewReader("  ana ; nivel1 ; 10 ; 5 \n"))
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, Play{Name: "ana", Level: "nivel1", Score: 10, Minutes: 5}, plays[0])
}

func TestSummarize(t *testing.T) {
	plays, _, err := ParseLog(strings.NewReader(logFixture))
	require.NoError(t, err)

	s := Summarize(plays)
	assert.Equal(t, 4, s.TotalPlays)
	assert.Equal(t, 2, s.Players)
	assert.InDelta(t, 147.5, s.MeanScore, 0.001)
	assert.Equal(t, map[string]int{"ana": 180, "luis": 200}, s.BestByPlayer)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalPlays)
	assert.Zero(t, s.Players)
	assert.Zero(t, s.MeanScore)
	assert.Empty(t, s.BestByPlayer)
}

func TestRankingOrder(t *testing.T) {
	best := map[string]int{"luis": 200, "ana": 180, "eva": 200}
	ranking := Ranking(best)
	require.Len(t, ranking, 3)
	assert.Equal(t, "eva", ranking[0].Name, "ties break by name")
	assert.Equal(t, "luis", ranking[1].Name)
	assert.Equal(t, "ana", ranking[2].Name)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	plays, skipped, err := ParseLog(strings.NewReader(logFixture))
	require.NoError(t, err)
	s := Summarize(plays)

	summaryPath := filepath.Join(dir, "resumen_general.txt")
	require.NoError(t, WriteSummary(summaryPath, s, skipped))
	raw, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "Todas las partidas: 4")
	assert.Contains(t, out, "Jugadores distintos: 2")
	assert.Contains(t, out, "Media de puntos: 147.5")
	assert.Contains(t, out, "Lineas saltadas: 2")

	rankingPath := filepath.Join(dir, "ranking_jugadores.txt")
	require.NoError(t, WriteRanking(rankingPath, s.BestByPlayer))
	raw, err = os.ReadFile(rankingPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "luis - 200\nana - 180\n")
}
