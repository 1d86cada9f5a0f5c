package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "apicradle.yaml")

	out := captureStdout(func() {
		if err := execRoot(t, "init", "--out", outPath); err != nil {
			t.Fatalf("execute: %v", err)
		}
	})
	if !strings.Contains(out, "Wrote sample config to") {
		t.Errorf("expected confirmation, got: %s", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"# apicradle configuration", "# demo:", "# format:"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("sample config misses %q", want)
		}
	}
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "apicradle.yaml")
	if err := os.WriteFile(outPath, []byte("keep: me\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	err := execRoot(t, "init", "--out", outPath)
	if err == nil || !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected message: %v", err)
	}

	captureStdout(func() {
		if err := execRoot(t, "init", "--out", outPath, "--force"); err != nil {
			t.Errorf("force should overwrite: %v", err)
		}
	})
}
