package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	now := time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC)
	stamped := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-30T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name        string
		version     string
		commit      string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{"ldflags win", "v1.0.0", "abc", stamped, "v1.0.0", "abc"},
		{"vcs stamp", "", "", stamped, "dev-20240530", "0123456-dirty"},
		{"module version", "", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.2.1"}}, "v0.2.1", "unknown"},
		{"devel module", "", "", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev-20240602-150405", "unknown"},
		{"no build info", "", "", nil, "dev-20240602-150405", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c := resolve(tt.version, tt.commit, tt.info, now)
			if v != tt.wantVersion || c != tt.wantCommit {
				t.Errorf("resolve() = (%q, %q), want (%q, %q)", v, c, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.Contains(full, Version) || !strings.Contains(full, "commit: "+Commit) {
		t.Errorf("Full() = %q, want version and commit", full)
	}
}
