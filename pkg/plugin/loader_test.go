package plugin

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderHandshake(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("Loader is nil")
	}
	l.Cleanup()

	if HandshakeConfig.MagicCookieKey != "RICEMILL_PLUGIN" {
		t.Errorf("MagicCookieKey = %q", HandshakeConfig.MagicCookieKey)
	}
	if _, ok := PluginMap["importer"]; !ok {
		t.Error("PluginMap missing importer entry")
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	l := NewLoader()
	defer l.Cleanup()

	t.Run("missing binary", func(t *testing.T) {
		if _, err := l.Load("/invalid/path/999"); err == nil {
			t.Error("Load() expected error for missing path")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := l.Load(t.TempDir()); err == nil {
			t.Error("Load() expected error for directory path")
		}
	})

	t.Run("non-executable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plugin")
		if err := os.WriteFile(path, []byte("not executable"), 0644); err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := l.Load(path); err == nil {
			t.Error("Load() expected error for non-executable file")
		}
	})
}
