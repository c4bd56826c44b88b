package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, ".env.local"), []byte("SIGRH_TEST_ENV_LOAD=ok\n"), 0o644); err != nil {
		t.Fatalf("write .env.local: %v", err)
	}

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("SIGRH_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("SIGRH_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded, got %q", got)
	}
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no env files loaded, got %d", n)
	}
}

func TestValidateAuthzMode(t *testing.T) {
	c := &Configuration{}
	c.Authz.Mode = "Enforce "
	if err := c.validateAuthzMode(); err != nil {
		t.Fatalf("expected enforce to validate, got %v", err)
	}
	if c.Authz.Mode != "enforce" {
		t.Fatalf("expected normalized mode, got %q", c.Authz.Mode)
	}

	c.Authz.Mode = "everything"
	if err := c.validateAuthzMode(); err == nil {
		t.Fatal("expected invalid mode to be rejected")
	}
}

func TestValidatePageSizes(t *testing.T) {
	c := &Configuration{PageSize: 20, MaxPageSize: 100}
	if err := c.validatePageSizes(); err != nil {
		t.Fatalf("expected valid page sizes, got %v", err)
	}

	c = &Configuration{PageSize: 50, MaxPageSize: 20}
	if err := c.validatePageSizes(); err == nil {
		t.Fatal("expected MAX_PAGE_SIZE < PAGE_SIZE to be rejected")
	}

	c = &Configuration{PageSize: 0, MaxPageSize: 20}
	if err := c.validatePageSizes(); err == nil {
		t.Fatal("expected zero PAGE_SIZE to be rejected")
	}
}
