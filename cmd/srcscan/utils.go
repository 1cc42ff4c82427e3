package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/srcscan/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory returns the configured directory, or .srcscan/reports
// under the working directory
func resolveOutputDirectory(configured string) string {
	if configured != "" {
		return configured
	}
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultOutputDirectory
	}
	return filepath.Join(cwd, config.DefaultOutputDirectory)
}

// generateOutputFilePath returns a fresh report path, creating its directory
func generateOutputFilePath(command, extension, configuredDir string) (string, error) {
	outputDir := resolveOutputDirectory(configuredDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}
