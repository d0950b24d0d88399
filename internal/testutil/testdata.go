package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadPacket returns the raw text of a captured packet fixture from
// testdata/packets, resolved relative to the calling package.
func LoadPacket(t *testing.T, name string) []byte {
	t.Helper()
	return readTestdata(t, filepath.Join("packets", name))
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
