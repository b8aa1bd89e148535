// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sociogram

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile writes body to dir/rel, creating parent directories.
func writeFile(t *testing.T, dir, rel, body string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// loadDir loads dir with the default normalizer.
func loadDir(t *testing.T, dir string) (*Index, []string) {
	t.Helper()
	return NewLoader(nil).Load(dir)
}
