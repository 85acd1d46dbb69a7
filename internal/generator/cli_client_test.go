package generator

import "testing"

func TestNewCLIClientFromEnv(t *testing.T) {
	t.Setenv("CLAUDE_CLI_PATH", "/opt/bin/claude")
	if c := NewCLIClientFromEnv(); c.cliPath != "/opt/bin/claude" {
		t.Errorf("cliPath = %q, want env override", c.cliPath)
	}

	t.Setenv("CLAUDE_CLI_PATH", "")
	if c := NewCLIClientFromEnv(); c.cliPath != "claude" {
		t.Errorf("cliPath = %q, want PATH fallback", c.cliPath)
	}
}
