package cssurl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped by .gitignore
}

// ignoreMatcher applies a .gitignore relative to the directory it was loaded from
type ignoreMatcher struct {
	base string
	gi   *ignore.GitIgnore
}

var (
	// gitignore caching
	gitIgnoreCache *ignoreMatcher
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads ./.gitignore once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignoreMatcher {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// No .gitignore is fine
			return
		}
		base, err := os.Getwd()
		if err != nil {
			return
		}
		gitIgnoreCache = &ignoreMatcher{base: base, gi: gi}
	})
	return gitIgnoreCache
}

// Matches reports whether path is ignored. Paths outside the matcher's
// directory are never ignored.
func (m *ignoreMatcher) Matches(path string) bool {
	if m == nil || m.gi == nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(m.base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return m.gi.MatchesPath(filepath.ToSlash(rel))
}

// discoverFiles expands includes under sourceDir to regular files,
// deduplicated and in glob order
func discoverFiles(sourceDir string, includes []string, ignored *ignoreMatcher) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range includes {
		// Combine source dir with pattern
		fullPattern := filepath.Join(sourceDir, pattern)

		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if ignored.Matches(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}
