package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesWithAPIKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "test-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "llm.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
staging_dir = "` + filepath.Join(dir, "staging") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[llm]
api_key = "file-key"

[extraction]
frame_interval = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Fatalf("unexpected api key %q", cfg.LLM.APIKey)
	}
	if cfg.Extraction.FrameInterval != 5 {
		t.Fatalf("expected frame interval override, got %d", cfg.Extraction.FrameInterval)
	}
	if cfg.Extraction.CropRegion != "bottom_quarter" {
		t.Fatalf("expected default crop region, got %q", cfg.Extraction.CropRegion)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Fatalf("expected absolute staging dir, got %q", cfg.Paths.StagingDir)
	}
}

func TestEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("COOKIT_LLM_API_KEY", "env-key")
	cfg := Default()
	cfg.LLM.APIKey = "file-key"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected env override, got %q", cfg.LLM.APIKey)
	}
}

func TestValidateRejectsBadCropRegion(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "k"
	cfg.Extraction.CropRegion = "top_left"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported crop region")
	}
}

func TestJobStagingDirIsolatesJobs(t *testing.T) {
	cfg := Default()
	cfg.Paths.StagingDir = "/tmp/cookit-staging"
	a := cfg.JobStagingDir("youtube-abc")
	b := cfg.JobStagingDir("youtube-def")
	if a == b {
		t.Fatal("expected per-job staging dirs to differ")
	}
	if filepath.Dir(a) != cfg.Paths.StagingDir {
		t.Fatalf("staging dir should nest under configured root: %q", a)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	t.Setenv("COOKIT_LLM_API_KEY", "sample-key")
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
