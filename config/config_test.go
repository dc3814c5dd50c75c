package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), pattern)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

// writeTempConfig creates a minimal configuration file required for LoadConfig
// and returns its path.
func writeTempConfig(t *testing.T) string {
	t.Helper()
	return writeTemp(t, "cfg.yml", `futurewire:
  name: "TestApp"
  version: "1.0"
stream:
  url: "wss://example.invalid/ws"
  failure_log_interval: 2s
batch:
  max_failures: 10
storage:
  s3:
    enabled: false
`)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FUTUREWIRE_STREAM_URL", "")
	cfg, err := LoadConfig(writeTempConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Futurewire.Name != "TestApp" {
		t.Errorf("unexpected name: %s", cfg.Futurewire.Name)
	}
	if cfg.Stream.URL != "wss://example.invalid/ws" {
		t.Errorf("unexpected stream url: %s", cfg.Stream.URL)
	}
	if cfg.Stream.FailureLogInterval != 2*time.Second {
		t.Errorf("unexpected failure log interval: %s", cfg.Stream.FailureLogInterval)
	}
	// defaults survive fields the file leaves out
	if cfg.Stream.FailureLogBurst != 5 || !cfg.Metrics.Decode {
		t.Errorf("defaults not applied: %+v %+v", cfg.Stream, cfg.Metrics)
	}
	if cfg.Batch.MaxFailures != 10 {
		t.Errorf("unexpected max failures: %d", cfg.Batch.MaxFailures)
	}
}

func TestLoadConfigStreamURLOverride(t *testing.T) {
	t.Setenv("FUTUREWIRE_STREAM_URL", " wss://override.invalid/ws ")
	cfg, err := LoadConfig(writeTempConfig(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Stream.URL != "wss://override.invalid/ws" {
		t.Fatalf("env override not applied: %s", cfg.Stream.URL)
	}
}

func TestLoadConfigS3FromEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("S3_BUCKET", "futurewire-archive")
	path := writeTemp(t, "s3.yml", `futurewire:
  name: "TestApp"
  version: "1.0"
storage:
  s3:
    enabled: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	s3 := cfg.Storage.S3
	if s3.Bucket != "futurewire-archive" || s3.Region != "eu-west-1" || s3.AccessKeyID != "AKID" {
		t.Fatalf("env overrides not applied: %+v", s3)
	}
	if s3.Prefix != "futurewire" {
		t.Fatalf("default prefix lost: %q", s3.Prefix)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"missing name", func(c *Config) { c.Futurewire.Name = "" }, false},
		{"zero burst", func(c *Config) { c.Stream.FailureLogBurst = 0 }, false},
		{"bad local ip", func(c *Config) { c.Stream.LocalIP = "10.0.0" }, false},
		{"good local ip", func(c *Config) { c.Stream.LocalIP = "10.0.0.7" }, true},
		{"negative max failures", func(c *Config) { c.Batch.MaxFailures = -1 }, false},
		{"cloudwatch without region", func(c *Config) { c.Metrics.CloudWatch.Enabled = true }, false},
		{"s3 without bucket", func(c *Config) { c.Storage.S3.Enabled = true }, false},
	}
	for _, c := range cases {
		cfg := Default()
		c.mutate(cfg)
		err := validateConfig(cfg)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestLoadStreamShards(t *testing.T) {
	t.Setenv("APP_ENV", "")
	path := writeTemp(t, "shards.yml", `shards:
- name: "primary"
  ip: "1.1.1.1"
  url: "wss://a.invalid/ws"
- ip: "2.2.2.2"
- name: "local"
`)
	shards, err := LoadStreamShards(path, "wss://fallback.invalid/ws")
	if err != nil {
		t.Fatalf("LoadStreamShards failed: %v", err)
	}
	if len(shards.Shards) != 3 {
		t.Fatalf("expected 3 shards, got %d", len(shards.Shards))
	}
	if shards.Shards[0].IP != "1.1.1.1" || shards.Shards[0].URL != "wss://a.invalid/ws" {
		t.Errorf("unexpected first shard: %+v", shards.Shards[0])
	}
	if shards.Shards[1].Name != "shard-1" || shards.Shards[1].URL != "wss://fallback.invalid/ws" {
		t.Errorf("unexpected second shard: %+v", shards.Shards[1])
	}
}

func TestLoadStreamShardsProductionRequiresIP(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	path := writeTemp(t, "shards.yml", `shards:
- name: "local"
  url: "wss://a.invalid/ws"
`)
	if _, err := LoadStreamShards(path, ""); err == nil {
		t.Fatalf("expected missing ip to fail in production")
	}
}

func TestLoadStreamShardsRejects(t *testing.T) {
	t.Setenv("APP_ENV", "")
	cases := []string{
		"shards:\n- name: a\n  ip: \"300.1.1.1\"\n  url: \"wss://a\"\n",
		"shards:\n- name: a\n  url: \"wss://a\"\n- name: a\n  url: \"wss://b\"\n",
		"shards:\n- name: a\n",
	}
	for i, content := range cases {
		path := writeTemp(t, "shards.yml", content)
		if _, err := LoadStreamShards(path, ""); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestAppEnvironmentAliases(t *testing.T) {
	cases := map[string]string{
		"":         EnvironmentDevelopment,
		"PROD":     EnvironmentProduction,
		"stagging": EnvironmentStaging,
		"qa":       "qa",
	}
	for in, want := range cases {
		t.Setenv("APP_ENV", in)
		if got := AppEnvironment(); got != want {
			t.Errorf("AppEnvironment(%q) = %q, want %q", in, got, want)
		}
	}
	if !IsProductionLike(EnvironmentStaging) || IsProductionLike(EnvironmentDevelopment) {
		t.Fatalf("unexpected production-like classification")
	}
}

func TestResolveEnvSpecificPath(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if got := resolveEnvSpecificPath("", defaultConfigPath, envConfigPaths); got != envConfigPaths[EnvironmentProduction] {
		t.Fatalf("expected production path, got %q", got)
	}
	if got := resolveEnvSpecificPath("custom.yml", defaultConfigPath, envConfigPaths); got != "custom.yml" {
		t.Fatalf("explicit path should win, got %q", got)
	}
}

func TestIsValidS3Bucket(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"valid-bucket", true},
		{"Invalid", false},
		{"ab", false},
		{"my..bucket", false},
	}
	for _, c := range cases {
		if got := isValidS3Bucket(c.name); got != c.valid {
			t.Errorf("isValidS3Bucket(%q) = %v, want %v", c.name, got, c.valid)
		}
	}
}
