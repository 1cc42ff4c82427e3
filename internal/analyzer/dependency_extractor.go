package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/srcscan/internal/lang"
)

// SourceFile is one file handed to the dependency extractor
type SourceFile struct {
	Path     string
	Language lang.Language
	Content  string
}

// SupportsImports reports whether ExtractImports understands the language
func SupportsImports(l lang.Language) bool {
	switch l {
	case lang.Rust, lang.JavaScript, lang.TypeScript, lang.Python:
		return true
	}
	return false
}

// ExtractImports returns the raw import targets found in content.
//
// Lines are only trimmed, never comment-filtered, so a commented-out import
// is still reported.
func ExtractImports(l lang.Language, content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		var target string
		switch l {
		case lang.Rust:
			target = rustImport(trimmed)
		case lang.JavaScript, lang.TypeScript:
			target = jsImport(trimmed)
		case lang.Python:
			target = pythonImport(trimmed)
		default:
			return nil
		}
		if target != "" {
			deps = append(deps, target)
		}
	}
	return deps
}

func rustImport(line string) string {
	switch {
	case strings.HasPrefix(line, "use "):
		path := secondPart(line, ";{} ")
		if path == "" || strings.HasPrefix(path, "crate::") ||
			strings.HasPrefix(path, "self::") || strings.HasPrefix(path, "std::") {
			return ""
		}
		// the dependency is the root of the use path
		module, _, _ := strings.Cut(path, "::")
		return module
	case strings.HasPrefix(line, "mod ") && !strings.Contains(line, "{"):
		return secondPart(line, "; ")
	}
	return ""
}

func jsImport(line string) string {
	if strings.HasPrefix(line, "import ") {
		if i := strings.Index(line, " from "); i >= 0 {
			return quotedModule(line[i+len(" from "):])
		}
		return ""
	}
	if i := strings.Index(line, "require("); i >= 0 {
		rest := line[i+len("require("):]
		if j := strings.Index(rest, "require("); j >= 0 {
			rest = rest[:j]
		}
		start := strings.IndexAny(rest, `"'`)
		if start < 0 {
			return ""
		}
		rest = rest[start+1:]
		end := strings.IndexAny(rest, `"'`)
		if end >= 0 {
			rest = rest[:end]
		}
		return keepUnscoped(strings.TrimSpace(rest))
	}
	return ""
}

func quotedModule(s string) string {
	start := strings.IndexAny(s, `"'`)
	if start < 0 {
		return ""
	}
	s = s[start+1:]
	end := strings.IndexAny(s, `"'`)
	if end < 0 {
		return ""
	}
	return keepUnscoped(s[:end])
}

// keepUnscoped drops scoped packages such as @org/pkg
func keepUnscoped(module string) string {
	if module == "" || strings.HasPrefix(module, "@") {
		return ""
	}
	return module
}

func pythonImport(line string) string {
	switch {
	case strings.HasPrefix(line, "import "):
		module := secondPart(line, " ,")
		if module == "as" {
			return ""
		}
		return module
	case strings.HasPrefix(line, "from "):
		i := strings.Index(line, " import ")
		if i < len("from ") {
			return ""
		}
		module := strings.TrimSpace(line[len("from "):i])
		if module == "." || module == ".." {
			return ""
		}
		return module
	}
	return ""
}

// secondPart splits s on every rune in seps, keeping empty fields, and
// returns the trimmed second field.
func secondPart(s, seps string) string {
	i := strings.IndexAny(s, seps)
	if i < 0 {
		return ""
	}
	rest := s[i+1:]
	if j := strings.IndexAny(rest, seps); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// ResolveImport maps an import target to a graph node id. Standard library
// and crate-local targets stay literal labels; everything else is joined
// with the importing file's parent directory.
func ResolveImport(importingFile, target string) string {
	if strings.HasPrefix(target, "std") || strings.Contains(target, "std::") ||
		strings.HasPrefix(target, "crate") || strings.Contains(target, "crate::") {
		return target
	}
	return filepath.Join(filepath.Dir(importingFile), target)
}

// BuildDependencyGraph adds every non-test file that imports something, plus
// its resolved imports, to a new graph. Unresolved targets become leaf nodes;
// they are not checked against the file system.
func BuildDependencyGraph(files []SourceFile) *DepGraph {
	g := NewDepGraph()
	for _, f := range files {
		if lang.IsTestFile(f.Path) || !SupportsImports(f.Language) {
			continue
		}
		AddFileDependencies(g, f.Path, ExtractImports(f.Language, f.Content))
	}
	return g
}

// AddFileDependencies adds one file node plus an edge to each resolved import.
// A file without imports contributes nothing until something imports it.
func AddFileDependencies(g *DepGraph, path string, imports []string) {
	if len(imports) == 0 {
		return
	}
	g.AddNode(path)
	for _, dep := range imports {
		target := ResolveImport(path, dep)
		g.AddNode(target)
		g.AddEdge(path, target)
	}
}
