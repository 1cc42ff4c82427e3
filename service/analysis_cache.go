package service

import (
	"os"
	"sync"
	"time"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
	"github.com/ludo-technologies/srcscan/internal/lang"
)

type cacheEntry[T any] struct {
	modTime time.Time
	value   T
}

// styleEntry remembers the detector options a profile was built with
type styleEntry struct {
	opts    analyzer.StyleOptions
	profile *domain.StyleProfile
}

// AnalysisCache memoizes per-file analysis results keyed by modification
// time. An entry hits only while the file on disk is not newer than the
// entry. It is safe for concurrent use.
type AnalysisCache struct {
	mu        sync.RWMutex
	content   map[string]cacheEntry[string]
	languages map[string]cacheEntry[lang.Language]
	metrics   map[string]cacheEntry[domain.FileMetrics]
	imports   map[string]cacheEntry[[]string]
	styles    map[string]cacheEntry[styleEntry]
}

// NewAnalysisCache creates an empty cache
func NewAnalysisCache() *AnalysisCache {
	c := &AnalysisCache{}
	c.reset()
	return c
}

func (c *AnalysisCache) reset() {
	c.content = make(map[string]cacheEntry[string])
	c.languages = make(map[string]cacheEntry[lang.Language])
	c.metrics = make(map[string]cacheEntry[domain.FileMetrics])
	c.imports = make(map[string]cacheEntry[[]string])
	c.styles = make(map[string]cacheEntry[styleEntry])
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func lookup[T any](c *AnalysisCache, m map[string]cacheEntry[T], path string) (T, bool) {
	var zero T
	current, ok := modTime(path)
	if !ok {
		return zero, false
	}
	c.mu.RLock()
	e, hit := m[path]
	c.mu.RUnlock()
	if !hit || current.After(e.modTime) {
		return zero, false
	}
	return e.value, true
}

func store[T any](c *AnalysisCache, m map[string]cacheEntry[T], path string, mt time.Time, v T) {
	c.mu.Lock()
	m[path] = cacheEntry[T]{modTime: mt, value: v}
	c.mu.Unlock()
}

// LoadContent returns the file content, reading it from disk on a miss.
// The returned time is the modification time the content corresponds to.
func (c *AnalysisCache) LoadContent(path string) (string, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", time.Time{}, err
	}
	c.mu.RLock()
	e, hit := c.content[path]
	c.mu.RUnlock()
	if hit && !info.ModTime().After(e.modTime) {
		return e.value, e.modTime, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, err
	}
	content := string(data)
	store(c, c.content, path, info.ModTime(), content)
	return content, info.ModTime(), nil
}

// Language returns the cached language of path
func (c *AnalysisCache) Language(path string) (lang.Language, bool) {
	return lookup(c, c.languages, path)
}

// PutLanguage caches the language of path
func (c *AnalysisCache) PutLanguage(path string, mt time.Time, l lang.Language) {
	store(c, c.languages, path, mt, l)
}

// Metrics returns the cached line counts of path
func (c *AnalysisCache) Metrics(path string) (domain.FileMetrics, bool) {
	return lookup(c, c.metrics, path)
}

// PutMetrics caches the line counts of path
func (c *AnalysisCache) PutMetrics(path string, mt time.Time, m domain.FileMetrics) {
	store(c, c.metrics, path, mt, m)
}

// Imports returns the cached import targets of path
func (c *AnalysisCache) Imports(path string) ([]string, bool) {
	return lookup(c, c.imports, path)
}

// PutImports caches the import targets of path
func (c *AnalysisCache) PutImports(path string, mt time.Time, imports []string) {
	store(c, c.imports, path, mt, imports)
}

// Style returns the cached style profile of path. A profile built with
// different detector options is a miss.
func (c *AnalysisCache) Style(path string, opts analyzer.StyleOptions) (*domain.StyleProfile, bool) {
	e, ok := lookup(c, c.styles, path)
	if !ok || e.opts != opts.Normalized() {
		return nil, false
	}
	return e.profile, true
}

// PutStyle caches the style profile of path built with opts
func (c *AnalysisCache) PutStyle(path string, mt time.Time, opts analyzer.StyleOptions, p *domain.StyleProfile) {
	store(c, c.styles, path, mt, styleEntry{opts: opts.Normalized(), profile: p})
}

// PurgeStale drops entries whose file is gone or changed since it was cached
func (c *AnalysisCache) PurgeStale() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := make(map[string]bool)
	check := func(path string, cached time.Time) {
		if _, known := stale[path]; known {
			return
		}
		current, ok := modTime(path)
		stale[path] = !ok || current.After(cached)
	}
	for p, e := range c.content {
		check(p, e.modTime)
	}
	for p, e := range c.languages {
		check(p, e.modTime)
	}
	for p, e := range c.metrics {
		check(p, e.modTime)
	}
	for p, e := range c.imports {
		check(p, e.modTime)
	}
	for p, e := range c.styles {
		check(p, e.modTime)
	}

	purged := 0
	for path, isStale := range stale {
		if !isStale {
			continue
		}
		purged++
		delete(c.content, path)
		delete(c.languages, path)
		delete(c.metrics, path)
		delete(c.imports, path)
		delete(c.styles, path)
	}
	return purged
}

// Clear drops every entry
func (c *AnalysisCache) Clear() {
	c.mu.Lock()
	clear(c.content)
	clear(c.languages)
	clear(c.metrics)
	clear(c.imports)
	clear(c.styles)
	c.mu.Unlock()
}

// Len returns the number of distinct paths with at least one entry
func (c *AnalysisCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make(map[string]struct{})
	for p := range c.content {
		paths[p] = struct{}{}
	}
	for p := range c.languages {
		paths[p] = struct{}{}
	}
	for p := range c.metrics {
		paths[p] = struct{}{}
	}
	for p := range c.imports {
		paths[p] = struct{}{}
	}
	for p := range c.styles {
		paths[p] = struct{}{}
	}
	return len(paths)
}
