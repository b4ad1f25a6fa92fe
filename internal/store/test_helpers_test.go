package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/indexgen/internal/codegen"
)

// createTestStore opens a store in a temp dir with predictable ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path, WithIDGenerator(NewFixedGenerator("gen-1", "gen-2", "gen-3", "gen-4")))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testArtifacts(contract string) []codegen.Artifact {
	return []codegen.Artifact{
		{Contract: contract, Path: contract + ".res", Content: "type a = int\n"},
		{Contract: contract, Path: contract + ".ts", Content: "export type A = number;\n"},
	}
}
