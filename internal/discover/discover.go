// Package discover expands path arguments into the stylesheets to process.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultPatterns are used when no paths are given.
var DefaultPatterns = []string{"**/*.css", "**/*.scss", "**/*.less"}

// directoryPattern is appended to directory arguments.
const directoryPattern = "**/*.{css,scss,less}"

// Stats tracks file discovery statistics
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Minified, ignored or excluded files
}

// Options controls filtering
type Options struct {
	GitIgnore string   // .gitignore to honor for relative paths; "" = ./.gitignore
	Exclude   []string // extra doublestar patterns to skip
}

// Finder expands glob patterns into files
type Finder struct {
	gitIgnore *ignore.GitIgnore
	exclude   []string
}

// New creates a Finder. A missing .gitignore is not an error.
func New(opts Options) (*Finder, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	path := opts.GitIgnore
	if path == "" {
		path = ".gitignore"
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		// Gracefully degrade - no .gitignore is fine
		gi = nil
	}

	return &Finder{gitIgnore: gi, exclude: opts.Exclude}, nil
}

// Files is a shorthand for New(opts) followed by Find.
func Files(patterns []string, opts Options) ([]string, Stats, error) {
	f, err := New(opts)
	if err != nil {
		return nil, Stats{}, err
	}
	return f.Find(patterns)
}

// Find expands globs and tracks statistics. Directory arguments are searched
// recursively for stylesheets. Results keep argument order without
// duplicates.
func (f *Finder) Find(patterns []string) ([]string, Stats, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	var allFiles []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			pattern = filepath.Join(pattern, directoryPattern)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("expanding %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			seen[match] = true
			stats.FilesDiscovered++

			if f.shouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			allFiles = append(allFiles, match)
			stats.FilesScanned++
		}
	}

	return allFiles, stats, nil
}

// shouldSkip determines if a file should be excluded
//
// Three-layer filtering:
// 1. Pattern check (fast): minified stylesheets
// 2. Exclude patterns from configuration
// 3. Gitignore check: only for relative paths
func (f *Finder) shouldSkip(path string) bool {
	if IsMinified(path) {
		return true
	}

	slashed := filepath.ToSlash(path)
	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}

	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if f.gitIgnore != nil && !filepath.IsAbs(path) {
		return f.gitIgnore.MatchesPath(slashed)
	}

	return false
}

// IsMinified reports whether path names a minified stylesheet.
func IsMinified(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".min.css")
}

// RelativePath returns path relative to the current working directory when
// possible.
func RelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
