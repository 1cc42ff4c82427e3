package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/srcscan/domain"
	"github.com/ludo-technologies/srcscan/internal/config"
	"github.com/ludo-technologies/srcscan/service"
)

const defaultMaxResults = 20

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "", nil)
	}
	return &HandlerSet{deps: deps}
}

// toolArgs holds the parsed arguments common to every tool
type toolArgs struct {
	raw  map[string]interface{}
	path string
	cfg  *config.Config
}

// parseArgs validates the path argument and resolves its configuration.
// A non-nil result is the error to return to the client.
func (h *HandlerSet) parseArgs(request mcp.CallToolRequest) (*toolArgs, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, mcp.NewToolResultError("path parameter is required and must be a string")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	cfg, err := h.deps.configFor(path)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return &toolArgs{raw: args, path: path, cfg: cfg}, nil
}

func (a *toolArgs) boolArg(name string, def bool) bool {
	if v, ok := a.raw[name].(bool); ok {
		return v
	}
	return def
}

func (a *toolArgs) intArg(name string, def int) int {
	// JSON numbers arrive as float64
	if v, ok := a.raw[name].(float64); ok && v > 0 {
		return int(v)
	}
	return def
}

func (a *toolArgs) stringArg(name, def string) string {
	if v, ok := a.raw[name].(string); ok && v != "" {
		return v
	}
	return def
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// HandleCountLines handles the count_lines tool
func (h *HandlerSet) HandleCountLines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := h.parseArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	result, err := h.deps.metricsService().Analyze(ctx, domain.MetricsRequest{
		ScanOptions: h.deps.scanOptions(args.path, args.cfg),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("metrics analysis failed: %v", err)), nil
	}

	data := map[string]interface{}{
		"total":             result.Aggregate.Total,
		"production":        result.Aggregate.Production,
		"test":              result.Aggregate.Test,
		"total_directories": result.Aggregate.TotalDirectories,
		"by_language":       result.Aggregate.ByLanguage,
	}
	if args.boolArg("include_files", false) {
		data["files"] = result.Files
	}
	if len(result.Warnings) > 0 {
		data["warnings"] = result.Warnings
	}
	return jsonResult(data)
}

// HandleAnalyzeDependencies handles the analyze_dependencies tool
func (h *HandlerSet) HandleAnalyzeDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := h.parseArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	arch := args.cfg.Architecture.Spec()
	if err := service.ValidateArchitecture(arch); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := h.deps.dependencyService().Analyze(ctx, domain.DependencyRequest{
		ScanOptions:  h.deps.scanOptions(args.path, args.cfg),
		Architecture: arch,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dependency analysis failed: %v", err)), nil
	}

	switch args.stringArg("output_mode", "summary") {
	case "full":
		return jsonResult(result)
	case "mermaid":
		return mcp.NewToolResultText(service.GraphFromResponse(result).ToMermaid(args.stringArg("focus", ""))), nil
	default:
		return jsonResult(map[string]interface{}{
			"summary":          result.Summary,
			"cycles":           result.Cycles,
			"layer_violations": result.LayerViolations,
		})
	}
}

// HandleCheckStyle handles the check_style tool
func (h *HandlerSet) HandleCheckStyle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := h.parseArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	s := args.cfg.Style
	result, err := h.deps.styleService().Analyze(ctx, domain.StyleRequest{
		ScanOptions:     h.deps.scanOptions(args.path, args.cfg),
		LineLimit:       s.LineLimit,
		SmallFileLines:  s.SmallFileLines,
		NamingThreshold: s.NamingThreshold,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("style analysis failed: %v", err)), nil
	}

	issues := append([]domain.StyleInconsistency(nil), result.Analysis.Inconsistencies...)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Level() > issues[j].Severity.Level()
	})
	if limit := args.intArg("max_results", defaultMaxResults); len(issues) > limit {
		issues = issues[:limit]
	}

	return jsonResult(map[string]interface{}{
		"summary":         result.Summary,
		"global_profile":  result.Analysis.GlobalProfile,
		"inconsistencies": issues,
	})
}

// HandleGetHealthScore handles the get_health_score tool
func (h *HandlerSet) HandleGetHealthScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := h.parseArgs(request)
	if errResult != nil {
		return errResult, nil
	}

	s := args.cfg.Style
	result, err := h.deps.runService().Run(ctx, domain.RunRequest{
		ScanOptions:     h.deps.scanOptions(args.path, args.cfg),
		EnableMetrics:   true,
		EnableDeps:      true,
		EnableStyle:     true,
		Architecture:    args.cfg.Architecture.Spec(),
		LineLimit:       s.LineLimit,
		SmallFileLines:  s.SmallFileLines,
		NamingThreshold: s.NamingThreshold,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"health_score": result.Summary.HealthScore,
		"grade":        result.Summary.Grade,
		"summary":      result.Summary,
	})
}
