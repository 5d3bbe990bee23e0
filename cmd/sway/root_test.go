package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenario(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(new(strings.Builder))
	cmd.SetErr(new(strings.Builder))
	return cmd.ExecuteContext(context.Background())
}

func TestPlayCommand(t *testing.T) {
	path := writeScenario(t, "merge.yaml", mergeScenario)
	opts := writeScenario(t, "fast.toml", "[animation]\nduration = 0.1\ndurationUpdate = 0.1\n")
	if err := execute("play", path, "--config", opts, "--fps", "30"); err != nil {
		t.Fatalf("play: %v", err)
	}
}

func TestPlayCommandErrors(t *testing.T) {
	path := writeScenario(t, "merge.yaml", mergeScenario)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing scenario", []string{"play", filepath.Join(t.TempDir(), "nope.yaml")}, "read scenario"},
		{"bad fps", []string{"play", path, "--fps", "0"}, "fps must be positive"},
		{"missing config", []string{"play", path, "-c", filepath.Join(t.TempDir(), "nope.toml")}, "read options"},
		{"no args", []string{"play"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPlayCommandCanceled(t *testing.T) {
	path := writeScenario(t, "merge.yaml", mergeScenario)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := newRootCmd()
	cmd.SetArgs([]string{"play", path})
	if err := cmd.ExecuteContext(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
