package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/format"
)

// useTempConfigDir points the config directory at a fresh temp dir and
// resets the global registry.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir override relies on XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	globalRegistryOnce = sync.Once{}
	t.Cleanup(func() { globalRegistryOnce = sync.Once{} })
	return filepath.Join(dir, appName)
}

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "grandiose") {
		t.Errorf("GetConfigDir() = %v, should contain 'grandiose'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := useTempConfigDir(t)

	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if want := filepath.Join(dir, "config.yaml"); configPath != want {
		t.Errorf("GetConfigPath() = %v, want %v", configPath, want)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Sources == nil {
		t.Error("NewRegistry().Sources should not be nil")
	}
	if reg.Wait() != discovery.DefaultWait {
		t.Errorf("NewRegistry().Wait() = %v, want %v", reg.Wait(), discovery.DefaultWait)
	}
	if !reg.DiscoveryOptions().Settings().ShowLocalSources {
		t.Error("default options should show local sources")
	}
	if reg.Receive.Bandwidth != format.BandwidthHighest {
		t.Errorf("Receive.Bandwidth = %v, want HIGHEST", reg.Receive.Bandwidth)
	}
}

func TestRegistry_Wait(t *testing.T) {
	tests := []struct {
		name string
		reg  *Registry
		want time.Duration
	}{
		{"no discovery section", &Registry{}, discovery.DefaultWait},
		{"zero", &Registry{Discovery: &DiscoveryPrefs{}}, discovery.DefaultWait},
		{"negative", &Registry{Discovery: &DiscoveryPrefs{WaitMS: -1}}, discovery.DefaultWait},
		{"explicit", &Registry{Discovery: &DiscoveryPrefs{WaitMS: 2500}}, 2500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reg.Wait(); got != tt.want {
				t.Errorf("Wait() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_DiscoveryOptionsIsCopy(t *testing.T) {
	reg := NewRegistry()
	opts := reg.DiscoveryOptions()
	opts.Groups = discovery.FilterString("changed")

	if reg.Discovery.Groups.IsSet() {
		t.Error("modifying the returned options changed the registry")
	}
}

func TestRegistry_EnsureSource(t *testing.T) {
	reg := NewRegistry()

	first := reg.EnsureSource("CAM (1)")
	if first == nil {
		t.Fatal("EnsureSource() returned nil")
	}
	if reg.EnsureSource("CAM (1)") != first {
		t.Error("EnsureSource() should return same instance for same name")
	}
	if reg.EnsureSource("CAM (2)") == first {
		t.Error("EnsureSource() should create new instance for different name")
	}
}

func TestRegistry_RecordSources(t *testing.T) {
	reg := &Registry{Version: 1}
	seen := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	reg.SetSourceNickname("CAM (1)", "Stage left")
	reg.RecordSources([]discovery.Source{
		{Name: "CAM (1)", URLAddress: "10.0.0.1:5961"},
		{Name: "CAM (2)", URLAddress: "10.0.0.2:5961"},
	}, seen)

	meta := reg.GetSource("CAM (1)")
	if meta == nil {
		t.Fatal("CAM (1) should exist after RecordSources()")
	}
	if meta.LastURL != "10.0.0.1:5961" || !meta.LastSeen.Equal(seen) {
		t.Errorf("CAM (1) = %+v", meta)
	}
	if meta.Nickname != "Stage left" {
		t.Errorf("Nickname = %q, recording must keep it", meta.Nickname)
	}

	if got := reg.DisplayName("CAM (1)"); got != "Stage left" {
		t.Errorf("DisplayName(CAM (1)) = %q", got)
	}
	if got := reg.DisplayName("CAM (2)"); got != "CAM (2)" {
		t.Errorf("DisplayName(CAM (2)) = %q", got)
	}
}

func TestRegistry_SaveAndLoad(t *testing.T) {
	dir := useTempConfigDir(t)

	reg := NewRegistry()
	reg.Discovery.Groups = discovery.FilterList("public", "studio")
	reg.Discovery.ExtraIPs = discovery.FilterString("10.0.0.5")
	reg.Discovery.WaitMS = 3000
	reg.Receive.ColorFormat = format.ColorFormatBGRXBGRAFlipped
	reg.SetSourceNickname("CAM (1)", "Stage left")

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"# Grandiose Configuration File", "color_format: BGRX_BGRA_FLIPPED", "wait_ms: 3000"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved file missing %q:\n%s", want, data)
		}
	}

	loaded, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}
	if groups, _ := loaded.Discovery.Groups.Normalize(); groups != "public,studio" {
		t.Errorf("Groups = %q, want public,studio", groups)
	}
	if loaded.Wait() != 3*time.Second {
		t.Errorf("Wait() = %v, want 3s", loaded.Wait())
	}
	if loaded.Receive.ColorFormat != format.ColorFormatBGRXBGRAFlipped {
		t.Errorf("ColorFormat = %v", loaded.Receive.ColorFormat)
	}
	if loaded.DisplayName("CAM (1)") != "Stage left" {
		t.Errorf("nickname lost on reload")
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	useTempConfigDir(t)

	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if reg.Version != 1 || reg.Discovery == nil {
		t.Errorf("LoadRegistry() = %+v, want defaults", reg)
	}
}

func TestLoadRegistry_FillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := loadRegistryFromFile(path)
	if err != nil {
		t.Fatalf("loadRegistryFromFile() error = %v", err)
	}
	if reg.Sources == nil || reg.Discovery == nil || reg.Receive == nil {
		t.Errorf("loadRegistryFromFile() = %+v, want all sections", reg)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad version", "version: 2\n", "unsupported config version"},
		{"bad yaml", "version: [\n", "failed to parse"},
		{"bad color format", "version: 1\nreceive:\n  color_format: PURPLE\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := loadRegistryFromFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadRegistryFromFile() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	useTempConfigDir(t)

	path, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := CreateDefaultConfig(false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second CreateDefaultConfig() error = %v, want ErrConfigExists", err)
	}
	if _, err := CreateDefaultConfig(true); err != nil {
		t.Errorf("CreateDefaultConfig(overwrite) error = %v", err)
	}
}

func BenchmarkEnsureSource(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureSource("CAM (1)")
	}
}
