package cssurl

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/cssurl/internal/icss"
)

// Run rewrites every stylesheet matched by config. A file that fails to
// parse or write is recorded in its FileResult and the run moves on; the
// returned error combines all per-file failures and is returned together
// with the result.
func Run(config Config, log *zap.Logger) (*RunResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("runner")

	filter, err := icss.NewFilter(config.Filter)
	if err != nil {
		return nil, fmt.Errorf("url filter: %w", err)
	}
	opts := Options{Filter: filter}

	// 1. Discover stylesheets
	var ignored *ignoreMatcher
	if config.RespectGitignore {
		ignored = loadGitIgnore()
	}
	files, stats, err := discoverFiles(config.SourceDir, config.Includes, ignored)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	log.Debug("Discovered stylesheets",
		zap.String("source", config.SourceDir),
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	result := &RunResult{
		Files:        make([]FileResult, 0, len(files)),
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
	}

	// 2. Rewrite each file independently
	var errs error
	for _, file := range files {
		fr := processFile(file, config, opts, log)
		switch {
		case fr.Err != nil:
			result.FilesFailed++
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, fr.Err))
			log.Warn("Unable to rewrite stylesheet", zap.String("file", file), zap.Error(fr.Err))
		case fr.Changed:
			result.FilesChanged++
		}
		result.Files = append(result.Files, fr)
	}

	return result, errs
}

func processFile(file string, config Config, opts Options, log *zap.Logger) FileResult {
	fr := FileResult{Path: file}

	info, err := os.Stat(file)
	if err != nil {
		fr.Err = err
		return fr
	}
	data, err := os.ReadFile(file)
	if err != nil {
		fr.Err = err
		return fr
	}

	out, res, err := Transform(string(data), opts)
	if err != nil {
		issue := icss.NewIssue(file, string(data), err)
		fr.Err = err
		fr.Issue = &issue
		return fr
	}
	fr.Imports = res.Imports
	fr.Declarations = res.Declarations
	fr.URLs = res.URLs
	fr.Changed = res.Changed()

	log.Debug("Processed stylesheet",
		zap.String("file", file),
		zap.Int("imports", len(res.Imports)),
		zap.Int("urls", res.URLs))

	switch {
	case config.Check:
		return fr
	case config.Stdout:
		fr.Output = out
		return fr
	}

	dest, err := destination(file, config)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Destination = dest

	// In place, untouched files are left alone. An output directory gets a
	// full mirror of the source tree.
	if config.OutputDir == "" && !fr.Changed {
		return fr
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		fr.Err = fmt.Errorf("create output dir: %w", err)
		return fr
	}
	if err := os.WriteFile(dest, []byte(out), info.Mode().Perm()); err != nil {
		fr.Err = fmt.Errorf("write output: %w", err)
		return fr
	}
	log.Debug("Wrote stylesheet", zap.String("file", dest))

	return fr
}

// destination maps a source file to the path it is written to, mirroring its
// position below SourceDir inside OutputDir.
func destination(file string, config Config) (string, error) {
	if config.OutputDir == "" {
		return file, nil
	}

	sourceDir := config.SourceDir
	if sourceDir == "" {
		sourceDir = "."
	}
	rel, err := filepath.Rel(sourceDir, file)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return filepath.Join(config.OutputDir, rel), nil
}
