package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/artyom-g-dv/grandiose/internal/config"
	"github.com/artyom-g-dv/grandiose/internal/discovery"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("grandiose %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestDiscoveryFlags_Options(t *testing.T) {
	reg := config.NewRegistry()
	reg.Discovery.Groups = discovery.FilterString("configured")
	reg.Discovery.ExtraIPs = discovery.FilterString("10.0.0.9")

	tests := []struct {
		name      string
		args      []string
		wantGroup string
		wantExtra string
		wantLocal bool
	}{
		{"config defaults", nil, "configured", "10.0.0.9", true},
		{"groups override", []string{"--group", "a,b", "--group", "c"}, "a,b,c", "10.0.0.9", true},
		{"extra ip override", []string{"--extra-ip", "10.0.0.1:5353"}, "configured", "10.0.0.1:5353", true},
		{"no local", []string{"--no-local"}, "configured", "10.0.0.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			var f discoveryFlags
			f.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			s := f.options(cmd, reg).Settings()
			if s.Groups == nil || *s.Groups != tt.wantGroup {
				t.Errorf("Groups = %v, want %q", s.Groups, tt.wantGroup)
			}
			if s.ExtraIPs == nil || *s.ExtraIPs != tt.wantExtra {
				t.Errorf("ExtraIPs = %v, want %q", s.ExtraIPs, tt.wantExtra)
			}
			if s.ShowLocalSources != tt.wantLocal {
				t.Errorf("ShowLocalSources = %v, want %v", s.ShowLocalSources, tt.wantLocal)
			}
		})
	}

	if reg.Discovery.Groups.String() != "configured" {
		t.Error("flags must not modify the registry")
	}
}

func TestFormatsCommand_JSON(t *testing.T) {
	out := execute(t, "formats", "--format", "json")

	var entries []formatEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 17 {
		t.Errorf("got %d entries, want 17", len(entries))
	}

	want := map[string]int{"BGRX_BGRA_FLIPPED": 200, "METADATA_ONLY": -10, "FIELD_1": 3, "INT_16_INTERLEAVED": 2}
	for _, e := range entries {
		if v, ok := want[e.Name]; ok && v != e.Value {
			t.Errorf("%s = %d, want %d", e.Name, e.Value, v)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	if out := execute(t, "version"); !strings.HasPrefix(out, "grandiose ") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigPathCommand(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir override relies on XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	out := strings.TrimSpace(execute(t, "config", "path"))
	if want := filepath.Join(dir, "grandiose", "config.yaml"); out != want {
		t.Errorf("config path = %q, want %q", out, want)
	}
}
