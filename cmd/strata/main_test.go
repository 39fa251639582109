package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strata.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTypes(t *testing.T) {
	code, out, errOut := runCLI(t, "types")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, name := range []string{"boolean", "integer32", "text", "function", "uuid"} {
		if !strings.Contains(out, name) {
			t.Errorf("types output missing %s:\n%s", name, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("color codes written to a buffer")
	}
}

func TestMethods(t *testing.T) {
	code, out, errOut := runCLI(t, "methods", "function")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, line := range []string{
		"sizeof() -> integer32",
		"type() -> text",
		"assign() -> function",
		"equal(function) -> boolean",
		"inequal(function) -> boolean",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("methods output missing %q:\n%s", line, out)
		}
	}

	code, _, errOut = runCLI(t, "methods", "matrix")
	if code != 1 || !strings.Contains(errOut, "unknown type") {
		t.Errorf("methods matrix = %d %q", code, errOut)
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.db")
	code, out, errOut := runCLI(t, "export", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "exported 5 types") {
		t.Errorf("export output = %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("catalog not written: %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	cfg := writeConfig(t, "types: [function, boolean, integer32, text]\n")
	code, out, errOut := runCLI(t, "--config", cfg, "types")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if strings.Contains(out, "uuid") {
		t.Errorf("uuid listed although not configured:\n%s", out)
	}

	code, _, _ = runCLI(t, "--config="+cfg, "types")
	if code != 0 {
		t.Errorf("--config= form exit %d", code)
	}

	bad := writeConfig(t, "validation: sometimes\n")
	code, _, errOut = runCLI(t, "--config", bad, "types")
	if code != 1 || !strings.HasPrefix(errOut, "Error:") {
		t.Errorf("bad config = %d %q", code, errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		args []string
		code int
	}{
		{nil, 2},
		{[]string{"frobnicate"}, 2},
		{[]string{"methods"}, 2},
		{[]string{"export"}, 2},
		{[]string{"--config"}, 2},
		{[]string{"--verbose", "types"}, 2},
		{[]string{"help"}, 0},
		{[]string{"--help"}, 0},
	}
	for _, tt := range tests {
		code, _, _ := runCLI(t, tt.args...)
		if code != tt.code {
			t.Errorf("run(%q) = %d, want %d", tt.args, code, tt.code)
		}
	}
}
