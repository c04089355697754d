package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()

	if profile.HeaderTitle != "Package Info" {
		t.Errorf("HeaderTitle = %q, want Package Info", profile.HeaderTitle)
	}
	if profile.MarkerLine != "This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:" {
		t.Errorf("unexpected MarkerLine %q", profile.MarkerLine)
	}
	if err := profile.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadProfileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	content := `
header_title = "Toolchain Contents"
marker_prefix = "This release bundles"
marker_suffix = "the following:"
marker_line = "This release bundles the following:"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	if profile.HeaderTitle != "Toolchain Contents" {
		t.Errorf("HeaderTitle = %q, want Toolchain Contents", profile.HeaderTitle)
	}
	// Fields not set in the file keep their defaults.
	if profile.ThreadModelPrefix != "Thread model:" {
		t.Errorf("ThreadModelPrefix = %q, want default", profile.ThreadModelPrefix)
	}
}

func TestLoadProfileInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("header_title = [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfile(path); err == nil {
		t.Error("LoadProfile() = nil error, want parse failure")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadProfile() = nil error, want failure for missing file")
	}
}

func TestLoadProfileBlankRequiredField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.toml")
	if err := os.WriteFile(path, []byte(`header_title = ""`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadProfile(path)
	if err == nil {
		t.Fatal("LoadProfile() = nil error, want validation failure")
	}
	if !strings.Contains(err.Error(), "header_title") {
		t.Errorf("error %q does not name the blank field", err)
	}
}

func TestIsMarkerLine(t *testing.T) {
	profile := DefaultProfile()

	tests := []struct {
		line string
		want bool
	}{
		{"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:", true},
		{"prefix This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of: suffix", true},
		{"This is the winlibs Intel/AMD build", false},
		{"standalone build of:", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := profile.IsMarkerLine(tt.line); got != tt.want {
			t.Errorf("IsMarkerLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsBuildLine(t *testing.T) {
	profile := DefaultProfile()

	tests := []struct {
		line string
		want bool
	}{
		{"This build was compiled with GCC 15.1.0 and packaged on 2025-06-09.", true},
		{"This build was compiled with GCC 15.1.0.", false},
		{"and packaged on 2025-06-09.", false},
	}

	for _, tt := range tests {
		if got := profile.IsBuildLine(tt.line); got != tt.want {
			t.Errorf("IsBuildLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
