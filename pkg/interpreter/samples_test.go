package interpreter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zurustar/gamerscript/pkg/script"
)

// TestSamples runs every sample script that has a matching .out file and
// compares the printed output.
func TestSamples(t *testing.T) {
	dir := filepath.Join("..", "..", "samples")
	scripts, err := filepath.Glob(filepath.Join(dir, "*"+script.Extension))
	if err != nil {
		t.Fatal(err)
	}
	if len(scripts) == 0 {
		t.Skipf("no samples found in %s", dir)
	}

	for _, path := range scripts {
		golden := strings.TrimSuffix(path, script.Extension) + ".out"
		want, err := os.ReadFile(golden)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			t.Fatal(err)
		}

		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := script.Load(path, script.EncodingAuto)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := runOK(t, s.Content); got != string(want) {
				t.Errorf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
		})
	}
}
