package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"repochunk/internal/config"
	"repochunk/internal/pipeline"
	"repochunk/internal/storage"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeRunNotFound   = -32001 // No recorded run matches the request
)

// MCPError carries a JSON-RPC style error to the framework
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{Code: code, Message: message, Data: data}
}

// handleChunkRepository handles the chunk_repository tool invocation
func (s *Server) handleChunkRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	repoPath, ok := args["repo_path"].(string)
	if !ok || repoPath == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "repo_path parameter is required", map[string]interface{}{
			"param":  "repo_path",
			"reason": "missing or empty",
		})
	}
	outputDir, ok := args["output_dir"].(string)
	if !ok || outputDir == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "output_dir parameter is required", map[string]interface{}{
			"param":  "output_dir",
			"reason": "missing or empty",
		})
	}
	if err := validateRepoPath(repoPath); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid repo_path", map[string]interface{}{
			"param":  "repo_path",
			"reason": err.Error(),
		})
	}

	cfg := &config.Config{
		RepoPath:  repoPath,
		OutputDir: outputDir,
		MaxWords:  getIntDefault(args, "max_words", 512),
		CodeExts:  config.ParseExtList(getStringDefault(args, "code_ext", "")),
		TextExts:  config.ParseExtList(getStringDefault(args, "text_ext", "")),
	}
	if len(cfg.CodeExts) == 0 {
		cfg.CodeExts = config.DefaultCodeExts
	}
	if len(cfg.TextExts) == 0 {
		cfg.TextExts = config.DefaultTextExts
	}

	stats, err := pipeline.New(cfg, s.store).Run(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"run_id":          stats.RunID,
		"text_files":      stats.TextFiles,
		"code_files":      stats.CodeFiles,
		"other_files":     stats.OtherFiles,
		"code_blocks":     stats.CodeBlocks,
		"comment_lines":   stats.CommentLines,
		"markdown_chunks": stats.MarkdownChunks,
		"comment_chunks":  stats.CommentChunks,
		"skipped_files":   stats.SkippedFiles,
		"duration_ms":     stats.Duration.Milliseconds(),
	}
	if len(stats.ErrorMessages) > 0 {
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetRunStats handles the get_run_stats tool invocation
func (s *Server) handleGetRunStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	runID := getStringDefault(args, "run_id", "")

	var run *storage.Run
	var err error
	if runID != "" {
		run, err = s.store.GetRun(ctx, runID)
	} else {
		var runs []*storage.Run
		runs, err = s.store.ListRuns(ctx, 1)
		if err == nil && len(runs) == 0 {
			err = storage.ErrNotFound
		}
		if err == nil {
			run = runs[0]
		}
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeRunNotFound, "no matching run recorded", map[string]interface{}{
			"run_id": runID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load run", map[string]interface{}{
			"error": err.Error(),
		})
	}

	unitCount, err := s.store.CountUnits(ctx, run.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to count units", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"run_id":          run.ID,
		"repo_path":       run.RepoPath,
		"output_dir":      run.OutputDir,
		"max_words":       run.MaxWords,
		"text_files":      run.TextFiles,
		"code_files":      run.CodeFiles,
		"other_files":     run.OtherFiles,
		"code_blocks":     run.CodeBlocks,
		"comment_lines":   run.CommentLines,
		"markdown_chunks": run.MarkdownChunks,
		"comment_chunks":  run.CommentChunks,
		"skipped_files":   run.SkippedFiles,
		"stored_units":    unitCount,
		"started_at":      run.StartedAt,
		"finished_at":     run.FinishedAt,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// validateRepoPath checks that a repository root is usable before a run
func validateRepoPath(path string) error {
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
