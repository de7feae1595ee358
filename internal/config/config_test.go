package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: "mysql"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown storage driver")
	}

	expected := `storage.driver must be one of "redis", "valkey", "sqlite", "none", got "mysql"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidDrivers(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverValkey, DriverSQLite, DriverNone} {
		t.Run("driver="+driver, func(t *testing.T) {
			cfg := Config{
				HTTP: HTTPConfig{Port: 8080},
				Storage: StorageConfig{
					Driver: driver,
					Addrs:  []string{"localhost:6379"},
				},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for driver %q: %v", driver, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 0},
		Storage: StorageConfig{Driver: DriverNone},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: DriverRedis},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_PageSizeAboveMax(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: DriverNone, PageSize: 200, MaxPageSize: 100},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for page size above max")
	}
}

func TestValidate_APIKeyWhitespace(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Storage: StorageConfig{Driver: DriverNone},
		Auth:    AuthConfig{APIKeys: []string{"ok", " padded"}},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for padded api key")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected Driver=sqlite, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.SQLitePath != "docsim.db" {
		t.Errorf("expected SQLitePath=docsim.db, got %q", cfg.Storage.SQLitePath)
	}
	if cfg.Storage.KeyPrefix != "docsim:" {
		t.Errorf("expected KeyPrefix='docsim:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Storage.ReadinessTimeout)
	}
	if cfg.Storage.SaveTimeoutMs != 2000 {
		t.Errorf("expected SaveTimeoutMs=2000, got %d", cfg.Storage.SaveTimeoutMs)
	}
	if cfg.Storage.HistoryLimit != 10000 {
		t.Errorf("expected HistoryLimit=10000, got %d", cfg.Storage.HistoryLimit)
	}
	if cfg.Storage.PageSize != 20 || cfg.Storage.MaxPageSize != 100 {
		t.Errorf("expected page sizes 20/100, got %d/%d", cfg.Storage.PageSize, cfg.Storage.MaxPageSize)
	}
	if cfg.Upload.MaxFileBytes != 20<<20 {
		t.Errorf("expected MaxFileBytes=20MiB, got %d", cfg.Upload.MaxFileBytes)
	}
	if cfg.Similarity.MinTokenLength != 1 {
		t.Errorf("expected MinTokenLength=1, got %d", cfg.Similarity.MinTokenLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 5, WriteTimeoutSec: 60, ShutdownSec: 3},
		Storage:    StorageConfig{Driver: DriverRedis, KeyPrefix: "custom:", HistoryLimit: 50},
		Upload:     UploadConfig{MaxFileBytes: 1024},
		Similarity: SimilarityConfig{MinTokenLength: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 5 {
		t.Errorf("expected ReadTimeoutSec=5, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Storage.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.HistoryLimit != 50 {
		t.Errorf("expected HistoryLimit=50, got %d", cfg.Storage.HistoryLimit)
	}
	if cfg.Upload.MaxFileBytes != 1024 {
		t.Errorf("expected MaxFileBytes=1024, got %d", cfg.Upload.MaxFileBytes)
	}
	if cfg.Similarity.MinTokenLength != 2 {
		t.Errorf("expected MinTokenLength=2, got %d", cfg.Similarity.MinTokenLength)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("DOCSIM_TEST_PORT", "9091")
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := "http:\n  port: ${DOCSIM_TEST_PORT}\nstorage:\n  driver: ${DOCSIM_TEST_DRIVER:-none}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9091 {
		t.Errorf("expected port 9091, got %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != DriverNone {
		t.Errorf("expected driver none, got %q", cfg.Storage.Driver)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 70000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCSIM_SET", "value")
	got := string(expandEnvVars([]byte("a=${DOCSIM_SET} b=${DOCSIM_UNSET_XYZ:-fallback} c=${DOCSIM_UNSET_XYZ}")))
	want := "a=value b=fallback c="
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}
