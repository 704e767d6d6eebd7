package config

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/estudiante")
	t.Setenv("AULA_TEST_DIR", "/srv/aula")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"tilde", "~/.local/share/aula", "/home/estudiante/.local/share/aula"},
		{"env var", "$AULA_TEST_DIR/data", "/srv/aula/data"},
		{"absolute untouched", "/var/lib/aula", "/var/lib/aula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckDebug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
	}

	for _, tt := range tests {
		t.Run("AULA_DEBUG="+tt.value, func(t *testing.T) {
			t.Setenv("AULA_DEBUG", tt.value)
			if got := CheckDebug(); got != tt.want {
				t.Errorf("CheckDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(dir) {
		t.Error("directories must not count as files")
	}
	if FileExists(filepath.Join(dir, "missing.toml")) {
		t.Error("missing path reported as existing")
	}
}
