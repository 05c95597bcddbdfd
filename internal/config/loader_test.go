package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: "1"
modules:
  node.telegram_send:
    api_url: https://api.telegram.org
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1")
	}
	if _, ok := cfg.Modules["node.telegram_send"]; !ok {
		t.Error("module section node.telegram_send missing")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")

	out, err := expandEnv([]byte("token: ${TG_TOKEN}\nurl: ${TG_API:-https://api.telegram.org}"))
	if err != nil {
		t.Fatalf("expandEnv: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "token: 123:abc") {
		t.Errorf("token not expanded: %s", s)
	}
	if !strings.Contains(s, "url: https://api.telegram.org") {
		t.Errorf("default not applied: %s", s)
	}
}

func TestExpandEnvUnresolved(t *testing.T) {
	_, err := expandEnv([]byte("token: ${DEFINITELY_NOT_SET_ANYWHERE}"))
	if err == nil {
		t.Fatal("expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "DEFINITELY_NOT_SET_ANYWHERE") {
		t.Errorf("error does not name the variable: %v", err)
	}
}

func TestResolveSorted(t *testing.T) {
	path := writeConfig(t, `
version: "1"
modules:
  node.telegram_send: {}
  gateway.http: {}
  journal.sqlite: {}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ids := Resolve(cfg)
	want := []string{"gateway.http", "journal.sqlite", "node.telegram_send"}
	if len(ids) != len(want) {
		t.Fatalf("len(ids) = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
