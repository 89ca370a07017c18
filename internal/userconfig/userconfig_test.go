package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsukumogami/depprobe/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PkgConfig != "" || cfg.BoostIncludeDir != "" || len(cfg.LibraryDirs) != 0 {
		t.Errorf("expected every value unset, got %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PkgConfig != "" {
		t.Errorf("expected unset pkg_config when file missing, got %q", cfg.PkgConfig)
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `pkg_config = "pkgconf"
boost_include_dir = "/opt/boost/include/boost"
library_dirs = ["/opt/lib", "/usr/local/lib"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PkgConfig != "pkgconf" {
		t.Errorf("PkgConfig = %q, want pkgconf", cfg.PkgConfig)
	}
	if cfg.BoostIncludeDir != "/opt/boost/include/boost" {
		t.Errorf("BoostIncludeDir = %q", cfg.BoostIncludeDir)
	}
	if len(cfg.LibraryDirs) != 2 || cfg.LibraryDirs[1] != "/usr/local/lib" {
		t.Errorf("LibraryDirs = %v", cfg.LibraryDirs)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml [[["), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := loadFromPath(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.toml")

	cfg := &Config{GMockLibDir: "/opt/gmock/lib", LibraryDirs: []string{"/opt/lib"}}
	if err := cfg.saveToPath(path); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.GMockLibDir != "/opt/gmock/lib" {
		t.Errorf("GMockLibDir = %q after save/load", loaded.GMockLibDir)
	}
	if len(loaded.LibraryDirs) != 1 || loaded.LibraryDirs[0] != "/opt/lib" {
		t.Errorf("LibraryDirs = %v after save/load", loaded.LibraryDirs)
	}
}

func TestGetAndSet(t *testing.T) {
	keys := []string{"pkg_config", "boost_include_dir", "boost_lib_dir", "gtest_include_dir", "gtest_src_dir", "gmock_lib_dir"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(key, "value-for-"+key); err != nil {
				t.Fatalf("Set(%q) unexpected error: %v", key, err)
			}
			got, ok := cfg.Get(key)
			if !ok {
				t.Fatalf("Get(%q) reported unknown key", key)
			}
			if got != "value-for-"+key {
				t.Errorf("Get(%q) = %q", key, got)
			}
		})
	}
}

func TestSetCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("BOOST_LIB_DIR", "/opt/lib"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BoostLibDir != "/opt/lib" {
		t.Errorf("BoostLibDir = %q", cfg.BoostLibDir)
	}
}

func TestSetLibraryDirs(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("library_dirs", "/opt/lib , /usr/local/lib,"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.LibraryDirs) != 2 || cfg.LibraryDirs[0] != "/opt/lib" || cfg.LibraryDirs[1] != "/usr/local/lib" {
		t.Errorf("LibraryDirs = %v", cfg.LibraryDirs)
	}
	if got, _ := cfg.Get("library_dirs"); got != "/opt/lib,/usr/local/lib" {
		t.Errorf("Get(library_dirs) = %q", got)
	}

	if err := cfg.Set("library_dirs", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LibraryDirs != nil {
		t.Errorf("expected nil LibraryDirs after clearing, got %v", cfg.LibraryDirs)
	}
}

func TestSetInvalidPkgConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("pkg_config", "pkg-config --static"); err == nil {
		t.Error("expected error for pkg_config containing arguments")
	}
}

func TestSetUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("unknown", "value"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, ok := cfg.Get("unknown"); ok {
		t.Error("expected unknown key to return false")
	}
}

func TestAvailableKeysMatchGet(t *testing.T) {
	cfg := DefaultConfig()
	for key := range AvailableKeys() {
		if _, ok := cfg.Get(key); !ok {
			t.Errorf("available key %q is not readable", key)
		}
	}
}

func TestLoadWithHomeOverride(t *testing.T) {
	home := testutil.SetHome(t)
	testutil.WriteFile(t, filepath.Join(home, "config.toml"), "gtest_src_dir = \"/opt/gtest\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GTestSrcDir != "/opt/gtest" {
		t.Errorf("GTestSrcDir = %q, want /opt/gtest", cfg.GTestSrcDir)
	}
}

func TestSaveCreatesHome(t *testing.T) {
	home := filepath.Join(testutil.SetHome(t), "nested")
	t.Setenv("DEPPROBE_HOME", home)

	cfg := DefaultConfig()
	if err := cfg.Set("boost_lib_dir", "/opt/boost/lib"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.BoostLibDir != "/opt/boost/lib" {
		t.Errorf("BoostLibDir = %q, want /opt/boost/lib", loaded.BoostLibDir)
	}
}
