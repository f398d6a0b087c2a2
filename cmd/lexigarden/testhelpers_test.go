package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupPackConfigFile writes one valid chunk pack and a config file whose
// pack_directories points at it.
func setupPackConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	packDir := filepath.Join(tmpDir, "packs", "animals")
	require.NoError(t, os.MkdirAll(packDir, 0o755))
	index := "id: animals\n" +
		"name: Animals\n" +
		"target_language: en\n" +
		"native_language: ja\n" +
		"chunk_paths:\n" +
		"  - chunks.yml\n"
	require.NoError(t, os.WriteFile(filepath.Join(packDir, "index.yml"), []byte(index), 0o644))
	chunks := "- id: animal-cat\n" +
		"  text: cat\n" +
		"  translation: ねこ\n" +
		"  type: polyword\n"
	require.NoError(t, os.WriteFile(filepath.Join(packDir, "chunks.yml"), []byte(chunks), 0o644))

	cfgPath := filepath.Join(tmpDir, "config.yml")
	cfg := "chunks:\n" +
		"  pack_directories:\n" +
		"    - " + filepath.Join(tmpDir, "packs") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}
