package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error for missing file = %v", err)
	}
	if cfg.Defaults.Edges != "" || cfg.Redis.Addr != "" || cfg.Mongo.URI != "" {
		t.Errorf("LoadConfig() for missing file = %+v, want defaults", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[defaults]
edges  = "/data/enwiki/edges"
target = "Mathematics"

[redis]
addr = "localhost:6379"
db   = 2

[mongo]
uri      = "mongodb://localhost:27017"
database = "wikiflow"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Defaults.Edges != "/data/enwiki/edges" {
		t.Errorf("Defaults.Edges = %q, want /data/enwiki/edges", cfg.Defaults.Edges)
	}
	if cfg.Defaults.Target != "Mathematics" {
		t.Errorf("Defaults.Target = %q, want Mathematics", cfg.Defaults.Target)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v, want addr localhost:6379 db 2", cfg.Redis)
	}
	if cfg.Mongo.Database != "wikiflow" {
		t.Errorf("Mongo.Database = %q, want wikiflow", cfg.Mongo.Database)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("defaults = ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() = nil error for unparseable file")
	}
}

func TestTargetResolution(t *testing.T) {
	c := &CLI{Config: Config{Defaults: DefaultsConfig{Target: "Mathematics"}}}

	if got := c.target("Science"); got != "Science" {
		t.Errorf("target(flag) = %q, flag should win", got)
	}
	if got := c.target(""); got != "Mathematics" {
		t.Errorf("target() = %q, want config value Mathematics", got)
	}

	c.Config.Defaults.Target = ""
	if got := c.target(""); got != "Philosophy" {
		t.Errorf("target() = %q, want built-in default Philosophy", got)
	}
}

func TestEdgesPathResolution(t *testing.T) {
	c := &CLI{Config: Config{Defaults: DefaultsConfig{Edges: "/configured"}}}

	if got := c.edgesPath("/flag"); got != "/flag" {
		t.Errorf("edgesPath(flag) = %q, flag should win", got)
	}
	if got := c.edgesPath(""); got != "/configured" {
		t.Errorf("edgesPath() = %q, want config value", got)
	}
}
