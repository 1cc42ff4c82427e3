package service

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/lang"
	"github.com/ludo-technologies/srcscan/internal/logging"
)

// skipDirs are never descended into
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"target":       {},
	"dist":         {},
	"build":        {},
	"__pycache__":  {},
	"venv":         {},
	".venv":        {},
	"bin":          {},
	"obj":          {},
}

// FileWalker collects source files under one or more roots
type FileWalker struct {
	logger *slog.Logger
}

// NewFileWalker creates a new file walker
func NewFileWalker(logger *slog.Logger) *FileWalker {
	return &FileWalker{logger: logging.OrDiscard(logger)}
}

// CollectFiles walks every root in opts and merges the results.
// Each root must exist and be a directory.
func (w *FileWalker) CollectFiles(opts domain.ScanOptions) (*domain.FileSet, error) {
	if err := ValidatePatterns(opts.IncludePatterns); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(opts.ExcludePatterns); err != nil {
		return nil, err
	}

	set := &domain.FileSet{}
	seen := make(map[string]struct{})
	seenRoots := make(map[string]struct{})
	for _, root := range opts.Paths {
		if _, dup := seenRoots[root]; dup {
			continue
		}
		seenRoots[root] = struct{}{}
		files, dirs, err := w.Collect(root, opts)
		if err != nil {
			return nil, err
		}
		set.Roots = append(set.Roots, root)
		set.Directories += dirs
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			set.Files = append(set.Files, f)
		}
	}
	sort.Strings(set.Files)
	return set, nil
}

// Collect walks a single root and returns the matching files in sorted order
// together with the number of directories visited below the root.
func (w *FileWalker) Collect(root string, opts domain.ScanOptions) ([]string, int, error) {
	if err := ValidateRoot(root); err != nil {
		return nil, 0, err
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	var files []string
	dirs := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		name := d.Name()
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			dirs++
			return nil
		}

		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if lang.ShouldExclude(path) {
			return nil
		}
		if !opts.IncludeTests && lang.IsTestFile("/"+rel) {
			return nil
		}
		if !shouldIncludeFile(rel, opts.IncludePatterns, opts.ExcludePatterns) {
			return nil
		}
		if opts.MaxFileSize > 0 {
			info, infoErr := d.Info()
			if infoErr != nil {
				w.logger.Debug("skipping file without stat", "path", path, "error", infoErr)
				return nil
			}
			if info.Size() > opts.MaxFileSize {
				w.logger.Debug("skipping large file", "path", path, "size", info.Size())
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}

	sort.Strings(files)
	return files, dirs, nil
}

// isTestPath classifies path relative to the first root containing it, so a
// test-looking directory above the scan root does not mark every file.
func isTestPath(roots []string, path string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return lang.IsTestFile("/" + filepath.ToSlash(rel))
	}
	return lang.IsTestFile(path)
}

// ReadFile reads the content of a file
func (w *FileWalker) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// ValidateRoot checks that root exists and is a directory
func ValidateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return domain.NewPathNotFoundError(root)
	}
	if !info.IsDir() {
		return domain.NewNotADirectoryError(root)
	}
	return nil
}

// ValidatePatterns rejects malformed glob patterns before any walking happens
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %q", p), nil)
		}
	}
	return nil
}

// shouldIncludeFile matches a root-relative slash path against the patterns.
// Patterns without a slash also match the base name.
func shouldIncludeFile(rel string, includePatterns, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matchPattern(pattern, rel) {
			return false
		}
	}
	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchPattern(pattern, rel) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, rel string) bool {
	if matched, _ := doublestar.Match(pattern, rel); matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		matched, _ := doublestar.Match(pattern, pathBase(rel))
		return matched
	}
	return false
}

func pathBase(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
