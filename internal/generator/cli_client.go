package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CLIClient shells out to the claude CLI for local challenge generation.
// Uses the developer's existing plan — no API key, no per-token charges.
type CLIClient struct {
	cliPath string
}

// NewCLIClientFromEnv resolves the binary from CLAUDE_CLI_PATH, falling
// back to whatever `claude` is on PATH.
func NewCLIClientFromEnv() *CLIClient {
	path := os.Getenv("CLAUDE_CLI_PATH")
	if path == "" {
		path = "claude"
	}
	return &CLIClient{cliPath: path}
}

func (c *CLIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	args := []string{
		"--print",
		"--output-format", "text",
		"--system-prompt", systemPrompt,
		"--max-turns", "1",
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.cliPath, args...)
	cmd.Stdin = strings.NewReader(userPrompt)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("claude CLI error: %w\nstderr: %s", err, stderr.String())
	}

	responseText := strings.TrimSpace(stdout.String())
	if responseText == "" {
		return nil, fmt.Errorf("claude CLI returned empty response")
	}

	return &LLMResponse{Content: responseText}, nil
}
