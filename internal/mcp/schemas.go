package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkRepositoryTool returns the tool definition for chunk_repository
func chunkRepositoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_repository",
		Description: "Chunk a source repository into size-bounded code blocks and prose chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"repo_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the repository to scan",
				},
				"output_dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory the output artifacts are written to",
				},
				"max_words": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum words per chunk",
					"default":     512,
					"minimum":     1,
				},
				"code_ext": map[string]interface{}{
					"type":        "string",
					"description": "Comma-separated code extensions overriding the defaults (.go,.java,.js,.ts,.php,.py,.rb)",
				},
				"text_ext": map[string]interface{}{
					"type":        "string",
					"description": "Comma-separated text extensions overriding the default (.md)",
				},
			},
			Required: []string{"repo_path", "output_dir"},
		},
	}
}

// getRunStatsTool returns the tool definition for get_run_stats
func getRunStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_run_stats",
		Description: "Report statistics for a recorded chunking run (latest run when no ID is given)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run identifier; omit for the most recent run",
				},
			},
		},
	}
}
