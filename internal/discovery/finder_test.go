package discovery

import (
	"errors"
	"testing"
)

func TestNewFinder_NormalizesOptions(t *testing.T) {
	tests := []struct {
		name         string
		opts         *Options
		wantLocal    bool
		wantGroups   *string
		wantExtraIPs *string
	}{
		{
			name:      "nil options",
			opts:      nil,
			wantLocal: true,
		},
		{
			name:      "show local disabled",
			opts:      &Options{ShowLocalSources: Bool(false)},
			wantLocal: false,
		},
		{
			name:       "group list joined",
			opts:       &Options{Groups: FilterList("A", "B")},
			wantLocal:  true,
			wantGroups: strPtr("A,B"),
		},
		{
			name:       "group string passed through",
			opts:       &Options{Groups: FilterString("A,B")},
			wantLocal:  true,
			wantGroups: strPtr("A,B"),
		},
		{
			name:         "extra ips list",
			opts:         &Options{ExtraIPs: FilterList("10.0.0.1", "10.0.0.2:5353")},
			wantLocal:    true,
			wantExtraIPs: strPtr("10.0.0.1,10.0.0.2:5353"),
		},
		{
			name:       "empty list is present",
			opts:       &Options{Groups: FilterList()},
			wantLocal:  true,
			wantGroups: strPtr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{}
			finder, err := NewFinder(engine.factory(), tt.opts)
			if err != nil {
				t.Fatalf("NewFinder() error = %v", err)
			}
			defer finder.Close()

			got := engine.settings
			if got.ShowLocalSources != tt.wantLocal {
				t.Errorf("ShowLocalSources = %v, want %v", got.ShowLocalSources, tt.wantLocal)
			}
			if !equalPtr(got.Groups, tt.wantGroups) {
				t.Errorf("Groups = %v, want %v", deref(got.Groups), deref(tt.wantGroups))
			}
			if !equalPtr(got.ExtraIPs, tt.wantExtraIPs) {
				t.Errorf("ExtraIPs = %v, want %v", deref(got.ExtraIPs), deref(tt.wantExtraIPs))
			}
			if finder.Settings() != got {
				t.Errorf("Finder.Settings() = %+v, want %+v", finder.Settings(), got)
			}
		})
	}
}

func TestNewFinder_InitializationError(t *testing.T) {
	cause := errors.New("network unreachable")

	finder, err := NewFinder(failingFactory(cause), nil)
	if finder != nil {
		t.Error("NewFinder() returned a finder on failure")
	}
	if !errors.Is(err, ErrInitialization) {
		t.Fatalf("NewFinder() error = %v, want initialization error", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewFinder() error does not wrap cause: %v", err)
	}

	if _, err := NewFinder(nil, nil); !errors.Is(err, ErrInitialization) {
		t.Errorf("NewFinder(nil factory) error = %v, want initialization error", err)
	}
}

func TestFinder_CurrentSources(t *testing.T) {
	want := []Source{{Name: "A"}, {Name: "B"}}
	engine := &fakeEngine{report: func(int) ([]Source, error) { return want, nil }}

	finder, err := NewFinder(engine.factory(), nil)
	if err != nil {
		t.Fatalf("NewFinder() error = %v", err)
	}
	defer finder.Close()

	got, err := finder.CurrentSources()
	if err != nil {
		t.Fatalf("CurrentSources() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("CurrentSources() = %v, want %v", got, want)
	}
}

func TestFinder_CurrentSourcesEngineError(t *testing.T) {
	engine := &fakeEngine{report: func(int) ([]Source, error) { return nil, errEngineBroken }}

	finder, err := NewFinder(engine.factory(), nil)
	if err != nil {
		t.Fatalf("NewFinder() error = %v", err)
	}
	defer finder.Close()

	_, err = finder.CurrentSources()
	if !errors.Is(err, ErrEngine) {
		t.Errorf("CurrentSources() error = %v, want engine error", err)
	}
	if !errors.Is(err, errEngineBroken) {
		t.Errorf("CurrentSources() error does not wrap cause: %v", err)
	}
}

func TestFinder_CloseIsIdempotent(t *testing.T) {
	engine := &fakeEngine{}
	finder, err := NewFinder(engine.factory(), nil)
	if err != nil {
		t.Fatalf("NewFinder() error = %v", err)
	}

	if err := finder.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := finder.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if err := finder.Close(); err != nil {
		t.Errorf("third Close() error = %v, want nil", err)
	}

	if engine.closeCount() != 1 {
		t.Errorf("engine closed %d times, want 1", engine.closeCount())
	}
	if !finder.Closed() {
		t.Error("Closed() = false after Close()")
	}
}

func TestFinder_CurrentSourcesAfterClose(t *testing.T) {
	engine := &fakeEngine{}
	finder, err := NewFinder(engine.factory(), nil)
	if err != nil {
		t.Fatalf("NewFinder() error = %v", err)
	}
	_ = finder.Close()

	for i := 0; i < 3; i++ {
		_, err := finder.CurrentSources()
		if !IsInvalidState(err) {
			t.Errorf("CurrentSources() after Close() error = %v, want invalid state", err)
		}
	}
	if engine.pollCount() != 0 {
		t.Errorf("engine polled %d times after Close(), want 0", engine.pollCount())
	}
}

func TestFinder_CloseReportsEngineFailureOnce(t *testing.T) {
	engine := &fakeEngine{closeErr: errors.New("release failed")}
	finder, err := NewFinder(engine.factory(), nil)
	if err != nil {
		t.Fatalf("NewFinder() error = %v", err)
	}

	if err := finder.Close(); err == nil {
		t.Error("first Close() error = nil, want release failure")
	}
	if err := finder.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
	if !finder.Closed() {
		t.Error("finder should be closed after a failed release")
	}
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeInitialization, "Initialization Error"},
		{ErrTypeInvalidState, "Invalid State"},
		{ErrTypeTimeout, "Discovery Timeout"},
		{ErrTypeEngine, "Engine Error"},
		{ErrorType(42), "ErrorType(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.et.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsMatchesType(t *testing.T) {
	err := newTimeoutError(DefaultWait)
	if !errors.Is(err, ErrTimeout) {
		t.Error("timeout error should match ErrTimeout")
	}
	if errors.Is(err, ErrInvalidState) {
		t.Error("timeout error should not match ErrInvalidState")
	}
	if got := err.Error(); got != "Discovery Timeout: no sources were found within 10s" {
		t.Errorf("Error() = %q", got)
	}
}

func strPtr(s string) *string { return &s }

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
