package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
app:
  name: recipe-finder-test
  port: 9100
jwt:
  secret: file-secret
  expire_hours: 2
redis:
  host: cache.local
  port: 6380
elasticsearch:
  index:
    recipes: recipes_v2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadReadsFileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Name != "recipe-finder-test" || cfg.App.Port != 9100 {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Catalog.BaseURL != "https://www.themealdb.com/api/json/v1/1/" {
		t.Errorf("catalog base url default not applied: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.MaxConcurrency != 8 {
		t.Errorf("max_concurrency = %d, want 8", cfg.Catalog.MaxConcurrency)
	}
	if got := cfg.Redis.Addr(); got != "cache.local:6380" {
		t.Errorf("redis addr = %q", got)
	}
	if got := cfg.Elasticsearch.RecipesIndex(); got != "recipes_v2" {
		t.Errorf("recipes index = %q", got)
	}
	if got := cfg.JWT.ExpireDuration(); got != 2*time.Hour {
		t.Errorf("jwt expire = %v", got)
	}
	if Get() != cfg {
		t.Error("Get should return the loaded config")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("jwt secret = %q, want env-secret", cfg.JWT.Secret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDurationFallbacks(t *testing.T) {
	var r RedisConfig
	if r.RecipeCacheDuration() != 6*time.Hour {
		t.Errorf("recipe cache default = %v", r.RecipeCacheDuration())
	}
	var c CatalogConfig
	if c.TimeoutDuration() != 10*time.Second {
		t.Errorf("catalog timeout default = %v", c.TimeoutDuration())
	}
	var e ElasticsearchConfig
	if e.RecipesIndex() != "recipes" {
		t.Errorf("recipes index default = %q", e.RecipesIndex())
	}
}
