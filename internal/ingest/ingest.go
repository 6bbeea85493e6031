// Package ingest locates and reads the receipt files of one batch run.
// Files are matched by a filename pattern inside a single directory and
// always returned in name order; id assignment downstream depends on that
// determinism.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches the receipt files the original batches were
// written with.
const DefaultPattern = "factura_*.txt"

// DirStats summarizes one directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// ListFiles returns the absolute paths under dir whose base name matches
// pattern, sorted by name. Hidden files and subdirectories are skipped. An
// empty result is not an error; the caller decides how to report it.
func ListFiles(dir, pattern string) ([]string, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(dir) == "" {
		return nil, stats, errors.New("source directory is required")
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, stats, fmt.Errorf("bad filename pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stats, fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		stats.Scanned++
		if e.IsDir() || isHidden(e.Name()) {
			stats.Skipped++
			continue
		}
		ok, _ := filepath.Match(pattern, e.Name())
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Matched++
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, stats, nil
}

// ReadFile reads one receipt as UTF-8 text. Any failure here is fatal for
// the whole batch.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read receipt %s: %w", path, err)
	}
	return string(raw), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
