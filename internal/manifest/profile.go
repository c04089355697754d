package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Profile describes the fixed text markers that delimit a package manifest
// inside a release document or build log. The defaults match the winlibs
// MinGW build; a TOML profile file can override individual fields for
// other projects.
type Profile struct {
	// HeaderTitle is the Markdown heading that opens the manifest section.
	HeaderTitle string `toml:"header_title"`
	// MarkerPrefix and MarkerSuffix identify the descriptive sentence that
	// opens the package list. A line must contain both to qualify.
	MarkerPrefix string `toml:"marker_prefix"`
	MarkerSuffix string `toml:"marker_suffix"`
	// MarkerLine is the canonical form of the marker sentence re-emitted
	// into rendered output.
	MarkerLine string `toml:"marker_line"`
	// ThreadModelPrefix and RuntimePrefix open the metadata lines that
	// follow the package list in a build log.
	ThreadModelPrefix string `toml:"thread_model_prefix"`
	RuntimePrefix     string `toml:"runtime_prefix"`
	// BuildLineContains and BuildLineDateMark together identify the
	// compiler/date line re-emitted as a block quote.
	BuildLineContains string `toml:"build_line_contains"`
	BuildLineDateMark string `toml:"build_line_date_mark"`
}

// DefaultProfile returns the built-in winlibs profile.
func DefaultProfile() *Profile {
	return &Profile{
		HeaderTitle:       "Package Info",
		MarkerPrefix:      "This is the winlibs Intel/AMD",
		MarkerSuffix:      "build of:",
		MarkerLine:        "This is the winlibs Intel/AMD 64-bit & 32-bit standalone build of:",
		ThreadModelPrefix: "Thread model:",
		RuntimePrefix:     "Runtime library:",
		BuildLineContains: "This build was compiled with GCC",
		BuildLineDateMark: "and packaged on",
	}
}

// LoadProfile reads a profile from a TOML file. Fields left unset in the
// file keep their built-in defaults.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if _, err := toml.DecodeFile(path, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

// Validate checks that the markers required to locate a manifest are set.
func (p *Profile) Validate() error {
	switch {
	case p.HeaderTitle == "":
		return fmt.Errorf("missing required field: header_title")
	case p.MarkerPrefix == "":
		return fmt.Errorf("missing required field: marker_prefix")
	case p.MarkerSuffix == "":
		return fmt.Errorf("missing required field: marker_suffix")
	case p.MarkerLine == "":
		return fmt.Errorf("missing required field: marker_line")
	}
	return nil
}

// IsMarkerLine reports whether a line is the package-list opener.
func (p *Profile) IsMarkerLine(line string) bool {
	return strings.Contains(line, p.MarkerPrefix) && strings.Contains(line, p.MarkerSuffix)
}

// IsBuildLine reports whether a line is the compiler/date metadata line.
func (p *Profile) IsBuildLine(line string) bool {
	return strings.Contains(line, p.BuildLineContains) && strings.Contains(line, p.BuildLineDateMark)
}
