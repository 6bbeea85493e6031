package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgomezmartin/ticketera/internal/gamelog"
)

// partidas summarizes a play log and writes the two report artifacts next
// to the input file.
func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: partidas <archivo de log>")
		os.Exit(1)
	}

	path := flag.Arg(0)
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path = filepath.Join(wd, path)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "El archivo '%s' no esta\n", path)
		os.Exit(1)
	}
	defer f.Close()

	plays, skipped, err := gamelog.ParseLog(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	summary := gamelog.Summarize(plays)
	dir := filepath.Dir(path)
	summaryPath := filepath.Join(dir, "resumen_general.txt")
	rankingPath := filepath.Join(dir, "ranking_jugadores.txt")

	if err := gamelog.WriteSummary(summaryPath, summary, skipped); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := gamelog.WriteRanking(rankingPath, summary.BestByPlayer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Partidas válidas: %d, jugadores distintos: %d\n", summary.TotalPlays, summary.Players)
	fmt.Printf("Resumen: %s\nRanking: %s\n", summaryPath, rankingPath)
}
