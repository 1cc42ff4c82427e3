package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/srcscan/internal/logging"
	"github.com/ludo-technologies/srcscan/internal/version"
	"github.com/ludo-technologies/srcscan/mcp"
)

const serverName = "srcscan"

// configEnv names an explicit configuration file applied to every request.
// When unset each request looks for .srcscan.toml above the analyzed path.
const configEnv = "SRCSCAN_CONFIG"

func main() {
	// MCP uses stdout for JSON-RPC, so logs go to stderr
	logger := logging.NewLogger(os.Stderr, logging.LevelFromString(os.Getenv("SRCSCAN_LOG_LEVEL")))

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	deps := mcp.NewDependencies(nil, os.Getenv(configEnv), logger)
	mcp.RegisterTools(server, mcp.NewHandlerSet(deps))

	logger.Info("starting MCP server",
		slog.String("name", serverName),
		slog.String("version", version.Short()),
		slog.Any("tools", []string{"count_lines", "analyze_dependencies", "check_style", "get_health_score"}),
	)

	// blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
