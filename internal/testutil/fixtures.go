// Package testutil holds fixture helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Root returns the repository root. It is derived from this file's path,
// so it is the same for tests in every package.
func Root() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("testutil: cannot locate source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// ProblemPath returns the path of a problem under testdata/problems.
func ProblemPath(name string) string {
	return filepath.Join(Root(), "testdata", "problems", name)
}

// ScenariosDir returns testdata/scenarios.
func ScenariosDir() string {
	return filepath.Join(Root(), "testdata", "scenarios")
}

// WriteFile writes content to name inside a fresh temp dir and returns the
// full path. Intermediate directories in name are created.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("testutil: mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("testutil: write %s: %v", name, err)
	}
	return path
}
