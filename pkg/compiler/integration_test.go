package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zurustar/gamerscript/pkg/script"
)

// TestIntegrationCompileSamples compiles every script in the samples
// directory at the repository root.
func TestIntegrationCompileSamples(t *testing.T) {
	dir := filepath.Join("..", "..", "samples")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skipf("sample directory %s not found", dir)
	}

	results, err := CompileDirectory(dir, script.EncodingAuto)
	if err != nil {
		t.Fatalf("CompileDirectory: %v", err)
	}

	for _, r := range results {
		t.Run(r.FileName, func(t *testing.T) {
			if r.Err != nil {
				t.Fatalf("compile failed: %v", r.Err)
			}
			if len(r.Statements) < 2 {
				t.Errorf("expected at least one statement besides end of file, got %d", len(r.Statements))
			}
		})
	}
}
