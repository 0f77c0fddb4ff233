package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/boxgrid/pkg/errors"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	c := New(io.Discard, LogInfo)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "boxgrid"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	c.Config.Cache.Dir = "/srv/boxgrid-cache"
	if dir, _ := c.cacheDir(); dir != "/srv/boxgrid-cache" {
		t.Errorf("configured cacheDir() = %q", dir)
	}
}

func TestCachePathAndClear(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "layout.json", layoutJSON)

	if err := tc.run("cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(tc.out.String()), "boxgrid") {
		t.Errorf("cache path = %q", tc.out.String())
	}

	if err := tc.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Cache is empty") {
		t.Errorf("clear on fresh cache = %q", tc.out.String())
	}

	if err := tc.run("verify", in); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := tc.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Cleared 2 cached entries") {
		t.Errorf("clear after verify = %q", tc.out.String())
	}
}

func TestNoCacheFlag(t *testing.T) {
	tc := newTestCLI(t)
	in := tc.write(t, "layout.json", layoutJSON)

	if err := tc.run("--no-cache", "encode", in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := tc.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(tc.out.String(), "Cache is empty") {
		t.Errorf("--no-cache should not create cache entries, got %q", tc.out.String())
	}
}

func TestNewCacheUnusableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = filepath.Join(blocker, "cache")

	_, err := c.newCache()
	if !errors.Is(err, errors.ErrCodeCache) {
		t.Fatalf("newCache() error = %v, want %s", err, errors.ErrCodeCache)
	}
}
