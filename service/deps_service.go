package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/analyzer"
	"github.com/ludo-technologies/srcscan/internal/lang"
)

// DependencyServiceImpl builds the import graph of a source tree
type DependencyServiceImpl struct {
	opts serviceOptions
}

// NewDependencyService creates a new dependency analysis service
func NewDependencyService(opts ...Option) *DependencyServiceImpl {
	return &DependencyServiceImpl{opts: buildOptions(opts)}
}

type fileImports struct {
	skipped bool
	imports []string
}

// Analyze computes the dependency graph and cycles for the given request
func (s *DependencyServiceImpl) Analyze(ctx context.Context, req domain.DependencyRequest) (*domain.DependencyResponse, error) {
	s.opts.cache.PurgeStale()
	set, err := s.opts.walker.CollectFiles(req.ScanOptions)
	if err != nil {
		return nil, err
	}

	extract := func(ctx context.Context, path string) (fileImports, error) {
		if isTestPath(set.Roots, path) {
			return fileImports{skipped: true}, nil
		}
		return s.extract(ctx, path)
	}
	results, err := RunFiles(ctx, s.opts.runner(req.Parallel), set.Files, extract)
	if err != nil {
		return nil, domain.NewAnalysisError("dependency analysis cancelled", err)
	}

	// fold in file order so both runner modes build the same graph
	g := analyzer.NewDepGraph()
	analyzed := 0
	for _, r := range results {
		if r.Err != nil {
			s.opts.logger.Debug("skipping unreadable file", slog.String("path", r.Path), slog.Any("error", r.Err))
			continue
		}
		if r.Value.skipped {
			continue
		}
		analyzed++
		analyzer.AddFileDependencies(g, r.Path, r.Value.imports)
	}

	resp := BuildDependencyResponse(g)
	resp.Summary.FilesAnalyzed = analyzed
	resp.RunID, resp.GeneratedAt, resp.Version = reportStamp()

	if arch := req.Architecture; arch != nil && len(arch.Layers) > 0 && len(arch.Rules) > 0 {
		assignments := assignLayers(resp.Nodes, set.Roots, arch.Layers)
		violations := validateLayerRules(assignments, g, arch.Rules)
		if len(violations) > 0 {
			resp.LayerViolations = violations
			resp.Summary.LayerViolations = len(violations)
		}
	}
	return resp, nil
}

func (s *DependencyServiceImpl) extract(_ context.Context, path string) (fileImports, error) {
	l := lang.Detect(path)
	if !analyzer.SupportsImports(l) {
		return fileImports{skipped: true}, nil
	}
	if imports, ok := s.opts.cache.Imports(path); ok {
		return fileImports{imports: imports}, nil
	}
	content, mt, err := s.opts.cache.LoadContent(path)
	if err != nil {
		return fileImports{}, err
	}
	imports := analyzer.ExtractImports(l, content)
	s.opts.cache.PutImports(path, mt, imports)
	return fileImports{imports: imports}, nil
}

// BuildDependencyResponse converts a graph into the reported nodes, edges and cycles
func BuildDependencyResponse(g *analyzer.DepGraph) *domain.DependencyResponse {
	edges := g.Edges()
	respEdges := make([]domain.DependencyEdge, 0, len(edges))
	for _, e := range edges {
		respEdges = append(respEdges, domain.DependencyEdge{From: e[0], To: e[1]})
	}

	cycles := g.FindCycles()
	respCycles := make([]domain.DependencyCycle, 0, len(cycles))
	for _, c := range cycles {
		respCycles = append(respCycles, domain.DependencyCycle{Modules: c})
	}

	nodes := g.Nodes()
	return &domain.DependencyResponse{
		Nodes:  nodes,
		Edges:  respEdges,
		Cycles: respCycles,
		Summary: domain.DependencySummary{
			Nodes:  len(nodes),
			Edges:  len(respEdges),
			Cycles: len(respCycles),
		},
	}
}

// GraphFromResponse rebuilds the graph a response was produced from
func GraphFromResponse(resp *domain.DependencyResponse) *analyzer.DepGraph {
	edges := make([][2]string, len(resp.Edges))
	for i, e := range resp.Edges {
		edges[i] = [2]string{e.From, e.To}
	}
	return analyzer.GraphFromEdges(resp.Nodes, edges)
}

// assignLayers maps nodes to layer names. A node belongs to the first layer
// with a path glob matching the node itself or the node relative to a root.
func assignLayers(nodes, roots []string, layers []domain.ArchitectureLayer) map[string]string {
	assign := make(map[string]string, len(nodes))
	for _, node := range nodes {
		candidates := layerCandidates(node, roots)
	layers:
		for _, layer := range layers {
			for _, pattern := range layer.Paths {
				for _, c := range candidates {
					if matched, _ := doublestar.Match(pattern, c); matched {
						assign[node] = layer.Name
						break layers
					}
				}
			}
		}
	}
	return assign
}

func layerCandidates(node string, roots []string) []string {
	candidates := []string{filepath.ToSlash(node)}
	for _, root := range roots {
		rel, err := filepath.Rel(root, node)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		candidates = append(candidates, filepath.ToSlash(rel))
	}
	return candidates
}

// validateLayerRules checks edges against allowed layer transitions
func validateLayerRules(assign map[string]string, g *analyzer.DepGraph, rules []domain.ArchitectureRule) []domain.LayerViolation {
	allow := make(map[string]map[string]struct{})
	for _, r := range rules {
		set := allow[r.From]
		if set == nil {
			set = make(map[string]struct{})
			allow[r.From] = set
		}
		for _, a := range r.Allow {
			set[a] = struct{}{}
		}
	}

	var out []domain.LayerViolation
	for _, e := range g.Edges() {
		fl, okf := assign[e[0]]
		tl, okt := assign[e[1]]
		if !okf || !okt {
			continue // unassigned nodes are not checked
		}
		if fl == tl {
			continue
		}
		if set, ok := allow[fl]; ok {
			if _, ok := set[tl]; ok {
				continue
			}
		}
		out = append(out, domain.LayerViolation{From: e[0], To: e[1], FromLayer: fl, ToLayer: tl})
	}
	return out
}

// ValidateArchitecture checks that every rule names a declared layer
func ValidateArchitecture(arch *domain.ArchitectureConfigSpec) error {
	if arch == nil {
		return nil
	}
	names := make(map[string]struct{}, len(arch.Layers))
	for _, l := range arch.Layers {
		if l.Name == "" {
			return domain.NewConfigError("architecture layer without a name", nil)
		}
		for _, p := range l.Paths {
			if !doublestar.ValidatePattern(p) {
				return domain.NewConfigError(fmt.Sprintf("invalid path glob %q in layer %s", p, l.Name), nil)
			}
		}
		names[l.Name] = struct{}{}
	}
	for _, r := range arch.Rules {
		if _, ok := names[r.From]; !ok {
			return domain.NewConfigError(fmt.Sprintf("architecture rule references unknown layer %q", r.From), nil)
		}
		for _, a := range r.Allow {
			if _, ok := names[a]; !ok {
				return domain.NewConfigError(fmt.Sprintf("architecture rule references unknown layer %q", a), nil)
			}
		}
	}
	return nil
}
