package manifest

import (
	"reflect"
	"testing"
)

func TestMarkdownScannerScan(t *testing.T) {
	scanner := NewMarkdownScanner(nil)

	lines := []string{
		"Release 2025.06.09",
		"",
		"## Package Info",
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 14.2.0",
		"",
		"- binutils 2.43.1",
		"## Script/Installer Changelogs",
		"- not-collected 1.0",
	}

	result := scanner.Scan(lines)

	if !result.SectionFound {
		t.Fatal("SectionFound = false, want true")
	}
	if result.Packages.Len() != 2 {
		t.Fatalf("Packages.Len() = %d, want 2", result.Packages.Len())
	}
	if names := result.Packages.Names(); !reflect.DeepEqual(names, []string{"GCC", "binutils"}) {
		t.Errorf("Names() = %v, want [GCC binutils]", names)
	}

	wantFragment := []string{
		"## Package Info",
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 14.2.0",
		"- binutils 2.43.1",
		"",
	}
	if !reflect.DeepEqual(result.Fragment, wantFragment) {
		t.Errorf("Fragment = %q, want %q", result.Fragment, wantFragment)
	}
}

func TestMarkdownScannerHeaderMatching(t *testing.T) {
	scanner := NewMarkdownScanner(nil)
	marker := "This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:"

	tests := []struct {
		name   string
		header string
		found  bool
	}{
		{"level two", "## Package Info", true},
		{"level three", "### Package Info", true},
		{"lowercase", "## package info", true},
		{"indented", "  ## Package Info", true},
		{"no hashes", "Package Info", false},
		{"different title", "## Packages", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scanner.Scan([]string{tt.header, marker, "- GCC 14.2.0"})
			if result.SectionFound != tt.found {
				t.Errorf("SectionFound = %v, want %v", result.SectionFound, tt.found)
			}
		})
	}
}

func TestMarkdownScannerSectionAbsent(t *testing.T) {
	scanner := NewMarkdownScanner(nil)

	result := scanner.Scan([]string{
		"Release notes",
		"- GCC 14.2.0",
		"## Downloads",
	})

	if result.SectionFound {
		t.Error("SectionFound = true, want false")
	}
	if result.Packages.Len() != 0 {
		t.Errorf("Packages.Len() = %d, want 0", result.Packages.Len())
	}
	if result.Fragment != nil {
		t.Errorf("Fragment = %q, want nil", result.Fragment)
	}
}

func TestMarkdownScannerSectionEmpty(t *testing.T) {
	scanner := NewMarkdownScanner(nil)

	// Heading and marker present, but the list has no bullets. An empty
	// section is still a found section.
	result := scanner.Scan([]string{
		"## Package Info",
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"## Next Section",
	})

	if !result.SectionFound {
		t.Error("SectionFound = false, want true")
	}
	if result.Packages.Len() != 0 {
		t.Errorf("Packages.Len() = %d, want 0", result.Packages.Len())
	}
}

func TestMarkdownScannerHeaderWithoutMarker(t *testing.T) {
	scanner := NewMarkdownScanner(nil)

	// Bullets that appear before the marker sentence are not package lines.
	result := scanner.Scan([]string{
		"## Package Info",
		"- GCC 14.2.0",
	})

	if !result.SectionFound {
		t.Error("SectionFound = false, want true")
	}
	if result.Packages.Len() != 0 {
		t.Errorf("Packages.Len() = %d, want 0", result.Packages.Len())
	}
}

func TestBuildLogScannerScan(t *testing.T) {
	scanner := NewBuildLogScanner(nil)

	lines := []string{
		"winlibs personal build version gcc-15.1.0-mingw-w64ucrt-12.0.0-r1",
		"",
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 15.1.0",
		"- GDB 16.2",
		"",
		"- binutils 2.43.1",
		"Thread model: posix",
		"Runtime library: UCRT",
		"This build was compiled with GCC 15.1.0 and packaged on 2025-06-09.",
	}

	result := scanner.Scan(lines)

	if !result.SectionFound {
		t.Fatal("SectionFound = false, want true")
	}
	if names := result.Packages.Names(); !reflect.DeepEqual(names, []string{"GCC", "GDB", "binutils"}) {
		t.Errorf("Names() = %v, want [GCC GDB binutils]", names)
	}

	wantFragment := []string{
		"## Package Info",
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 15.1.0",
		"- GDB 16.2",
		"- binutils 2.43.1",
		"",
		"<strong>Thread model:</strong> POSIX",
		"",
		"<br>",
		"",
		"<strong>Runtime library:</strong> UCRT<br>",
		"",
		"> This build was compiled with GCC 15.1.0 and packaged on 2025-06-09",
		"",
	}
	if !reflect.DeepEqual(result.Fragment, wantFragment) {
		t.Errorf("Fragment:\n got %q\nwant %q", result.Fragment, wantFragment)
	}
}

func TestBuildLogScannerThreadModelNormalization(t *testing.T) {
	scanner := NewBuildLogScanner(nil)
	marker := "This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:"

	tests := []struct {
		name string
		line string
		want string
	}{
		{"lowercase posix", "Thread model: posix", "<strong>Thread model:</strong> POSIX"},
		{"mixed case posix", "Thread model: Posix", "<strong>Thread model:</strong> POSIX"},
		{"win32 kept verbatim", "Thread model: win32", "<strong>Thread model:</strong> win32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scanner.Scan([]string{marker, "- GCC 15.1.0", tt.line})
			found := false
			for _, line := range result.Fragment {
				if line == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("Fragment %q does not contain %q", result.Fragment, tt.want)
			}
		})
	}
}

func TestBuildLogScannerBlankLinesStayInList(t *testing.T) {
	scanner := NewBuildLogScanner(nil)

	result := scanner.Scan([]string{
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 15.1.0",
		"",
		"",
		"- UPX 4.2.4",
	})

	if names := result.Packages.Names(); !reflect.DeepEqual(names, []string{"GCC", "UPX"}) {
		t.Errorf("Names() = %v, want [GCC UPX]", names)
	}
}

func TestBuildLogScannerNonBulletClosesAfterBullets(t *testing.T) {
	scanner := NewBuildLogScanner(nil)

	result := scanner.Scan([]string{
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"- GCC 15.1.0",
		"build finished in 42 minutes",
		"- GDB 16.2",
	})

	if names := result.Packages.Names(); !reflect.DeepEqual(names, []string{"GCC"}) {
		t.Errorf("Names() = %v, want [GCC]", names)
	}
	if got := result.Fragment[len(result.Fragment)-1]; got != "" {
		t.Errorf("last fragment line = %q, want blank separator", got)
	}
}

func TestBuildLogScannerGarbageBeforeFirstBullet(t *testing.T) {
	scanner := NewBuildLogScanner(nil)

	// Non-bullet noise before the first bullet does not close the list.
	result := scanner.Scan([]string{
		"This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		"downloading sources...",
		"- GCC 15.1.0",
	})

	if names := result.Packages.Names(); !reflect.DeepEqual(names, []string{"GCC"}) {
		t.Errorf("Names() = %v, want [GCC]", names)
	}
}

func TestBuildLogScannerMarkerAbsent(t *testing.T) {
	scanner := NewBuildLogScanner(nil)

	result := scanner.Scan([]string{
		"- GCC 15.1.0",
		"Thread model: posix",
	})

	if result.SectionFound {
		t.Error("SectionFound = true, want false")
	}
	if result.Packages.Len() != 0 {
		t.Errorf("Packages.Len() = %d, want 0", result.Packages.Len())
	}
}

func TestBuildLogScannerCustomProfile(t *testing.T) {
	profile := DefaultProfile()
	profile.HeaderTitle = "Toolchain Contents"
	profile.MarkerPrefix = "This release bundles"
	profile.MarkerSuffix = "the following:"
	profile.MarkerLine = "This release bundles the following:"

	scanner := NewBuildLogScanner(profile)
	result := scanner.Scan([]string{
		"This release bundles the following:",
		"- zig 0.13.0",
	})

	if !result.SectionFound {
		t.Fatal("SectionFound = false, want true")
	}
	if result.Fragment[0] != "## Toolchain Contents" {
		t.Errorf("Fragment[0] = %q, want ## Toolchain Contents", result.Fragment[0])
	}
}
