package main

import (
	"path/filepath"
	"testing"

	"mediasort/internal/testsupport"
)

func TestStatusReportsStatePaths(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, env.cfg.RegistryPath())
	requireContains(t, out, env.cfg.CheckpointPath())
}

func TestStatusCountsEntriesAfterSort(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "input")
	output := filepath.Join(env.baseDir, "output")

	testsupport.WriteMedia(t, filepath.Join(input, "a.jpg"), "one")
	if _, stderr, err := runCLI(t, []string{"sort", "-i", input, "-o", output}, env.configPath); err != nil {
		t.Fatalf("sort: %v (stderr: %s)", err, stderr)
	}

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "1")
}
