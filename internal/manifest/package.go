package manifest

import (
	"regexp"
	"strings"
)

// versionedLinePattern matches a bulleted entry carrying a version token,
// e.g. "- GCC 14.2.0" or "- GCC 14.2.0 (with POSIX threads)". The version
// token allows dotted alphanumerics plus up to two hyphenated suffixes.
var versionedLinePattern = regexp.MustCompile(`^\s*-\s*(.+?)\s+([\d.a-zA-Z]+(?:-[\w.]+)?(?:-\w+)?)\s*(\(.*\))?\s*$`)

// bareLinePattern matches a bulleted entry with no detectable version,
// e.g. "- mingw32-make". It is a superset of versionedLinePattern and must
// only be tried after the versioned pattern has failed.
var bareLinePattern = regexp.MustCompile(`^\s*-\s*(.+?)\s*$`)

// Package represents one parsed manifest entry.
type Package struct {
	// Name is the package identifier, the join key when diffing manifests.
	Name string
	// Version is the raw version token, empty when the line carries none.
	// Versions are only ever compared as opaque strings.
	Version string
	// ExtraInfo is the parenthesized annotation, preserved verbatim
	// including the parentheses (e.g. "(with POSIX threads)").
	ExtraInfo string
	// FullLine is the original trimmed source line.
	FullLine string
}

// DisplayVersion returns the version for rendering, substituting "N/A"
// when the entry has none.
func (p Package) DisplayVersion() string {
	if p.Version == "" {
		return "N/A"
	}
	return p.Version
}

// ParseLine parses a single line into a Package. The versioned pattern is
// tried first; a line that matches neither pattern is not a package entry
// and ok is false. Callers must still reject entries with an empty Name
// before inserting them into a Mapping.
func ParseLine(line string) (pkg Package, ok bool) {
	trimmed := strings.TrimSpace(line)

	if m := versionedLinePattern.FindStringSubmatch(trimmed); m != nil {
		return Package{
			Name:      strings.TrimSpace(m[1]),
			Version:   strings.TrimSpace(m[2]),
			ExtraInfo: strings.TrimSpace(m[3]),
			FullLine:  trimmed,
		}, true
	}

	if m := bareLinePattern.FindStringSubmatch(trimmed); m != nil {
		return Package{
			Name:     strings.TrimSpace(m[1]),
			FullLine: trimmed,
		}, true
	}

	return Package{}, false
}

// LinesToMapping parses a list of package lines into a Mapping. Lines that
// are not package entries, or that yield an empty name, are skipped.
func LinesToMapping(lines []string) *Mapping {
	mapping := NewMapping()
	for _, line := range lines {
		pkg, ok := ParseLine(line)
		if !ok || pkg.Name == "" {
			continue
		}
		mapping.Add(pkg)
	}
	return mapping
}
