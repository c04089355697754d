package manifest

import (
	"regexp"
	"strings"
)

// sectionHeaderPattern matches the start of any "##"-style Markdown section.
var sectionHeaderPattern = regexp.MustCompile(`^\s*##`)

// scanState names the position of a scanner within the document.
type scanState int

const (
	// stateSeeking: before the manifest section.
	stateSeeking scanState = iota
	// stateHeaderFound: heading seen, marker sentence not yet.
	stateHeaderFound
	// stateInList: consuming bulleted package lines.
	stateInList
	// stateClosed: past the package list.
	stateClosed
)

// ScanResult holds the two outputs of a manifest scan: the parsed package
// mapping and a normalized Markdown rendering of the section.
type ScanResult struct {
	// Packages maps package name to entry, in encounter order.
	Packages *Mapping
	// PackageLines holds the trimmed bullet lines in encounter order.
	PackageLines []string
	// Fragment is the normalized Markdown rendering of the manifest
	// section, empty when the section was not found.
	Fragment []string
	// SectionFound reports whether the section opener was seen at all,
	// letting callers tell an absent section apart from an empty one.
	SectionFound bool
}

// Scanner extracts a package manifest from a sequence of lines.
type Scanner interface {
	Scan(lines []string) *ScanResult
}

// MarkdownScanner reads an already-rendered release body: a "Package Info"
// heading, then the marker sentence, then bulleted package lines up to the
// next "##" section.
type MarkdownScanner struct {
	profile *Profile
	header  *regexp.Regexp
}

// NewMarkdownScanner creates a scanner for rendered release bodies.
// A nil profile selects the built-in default.
func NewMarkdownScanner(profile *Profile) *MarkdownScanner {
	if profile == nil {
		profile = DefaultProfile()
	}
	return &MarkdownScanner{
		profile: profile,
		header:  headerPattern(profile),
	}
}

// headerPattern matches the manifest heading case-insensitively with any
// amount of leading hashes and whitespace.
func headerPattern(profile *Profile) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*#+\s*` + regexp.QuoteMeta(profile.HeaderTitle))
}

// Scan walks the lines and extracts the manifest section.
func (s *MarkdownScanner) Scan(lines []string) *ScanResult {
	result := &ScanResult{Packages: NewMapping()}
	state := stateSeeking

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateSeeking:
			if s.header.MatchString(line) {
				result.Fragment = append(result.Fragment, "## "+s.profile.HeaderTitle)
				result.SectionFound = true
				state = stateHeaderFound
			}

		case stateHeaderFound:
			if s.profile.IsMarkerLine(line) {
				result.Fragment = append(result.Fragment, s.profile.MarkerLine)
				state = stateInList
			}

		case stateInList:
			switch {
			case strings.HasPrefix(trimmed, "- "):
				result.collect(trimmed)
			case sectionHeaderPattern.MatchString(line):
				result.Fragment = append(result.Fragment, "")
				state = stateClosed
			}
		}

		if state == stateClosed {
			break
		}
	}

	return result
}

// BuildLogScanner reads an unrendered build-tool log. The marker sentence
// opens the package list directly, with no heading required. The list
// closes on the first metadata line, or on the first other non-blank line
// once at least one bullet has been consumed; stray blank lines between
// bullets do not close it. Metadata lines after the list are reformatted
// into emphasized Markdown in the fragment.
type BuildLogScanner struct {
	profile *Profile
}

// NewBuildLogScanner creates a scanner for raw build logs. A nil profile
// selects the built-in default.
func NewBuildLogScanner(profile *Profile) *BuildLogScanner {
	if profile == nil {
		profile = DefaultProfile()
	}
	return &BuildLogScanner{profile: profile}
}

// Scan walks the lines and extracts the manifest section, synthesizing the
// heading and marker that the raw log lacks.
func (s *BuildLogScanner) Scan(lines []string) *ScanResult {
	result := &ScanResult{Packages: NewMapping()}
	state := stateSeeking

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateSeeking:
			if s.profile.IsMarkerLine(line) {
				result.Fragment = append(result.Fragment, "## "+s.profile.HeaderTitle, s.profile.MarkerLine)
				result.SectionFound = true
				state = stateInList
			}

		case stateInList:
			switch {
			case strings.HasPrefix(trimmed, "- "):
				result.collect(trimmed)
			case trimmed == "":
				// A blank line between bullets does not end the list.
			case s.isMetadataLine(trimmed, line):
				result.Fragment = append(result.Fragment, "")
				state = stateClosed
				s.appendMetadata(result, trimmed, line)
			case len(result.PackageLines) > 0:
				// First other non-blank line after the bullets ends the list.
				result.Fragment = append(result.Fragment, "")
				state = stateClosed
			}

		case stateClosed:
			s.appendMetadata(result, trimmed, line)
		}
	}

	return result
}

// isMetadataLine reports whether a line opens the post-list metadata block.
func (s *BuildLogScanner) isMetadataLine(trimmed, line string) bool {
	return strings.HasPrefix(trimmed, s.profile.ThreadModelPrefix) ||
		strings.HasPrefix(trimmed, s.profile.RuntimePrefix) ||
		s.profile.IsBuildLine(line)
}

// appendMetadata reformats a recognized metadata line into the fragment.
// The thread model value "posix" is normalized to its display form POSIX;
// the compiler/date line is re-emitted as a block quote with a single
// trailing period stripped. Unrecognized lines are dropped.
func (s *BuildLogScanner) appendMetadata(result *ScanResult, trimmed, line string) {
	profile := s.profile
	switch {
	case strings.HasPrefix(trimmed, profile.ThreadModelPrefix):
		value := strings.TrimSpace(strings.TrimPrefix(trimmed, profile.ThreadModelPrefix))
		if strings.EqualFold(value, "posix") {
			value = "POSIX"
		}
		result.Fragment = append(result.Fragment,
			"<strong>"+profile.ThreadModelPrefix+"</strong> "+value, "", "<br>", "")
	case strings.HasPrefix(trimmed, profile.RuntimePrefix):
		value := strings.TrimSpace(strings.TrimPrefix(trimmed, profile.RuntimePrefix))
		result.Fragment = append(result.Fragment,
			"<strong>"+profile.RuntimePrefix+"</strong> "+value+"<br>", "")
	case profile.IsBuildLine(line):
		result.Fragment = append(result.Fragment, "> "+strings.TrimSuffix(trimmed, "."), "")
	}
}

// collect records one bullet line in all three accumulators.
func (r *ScanResult) collect(trimmed string) {
	r.PackageLines = append(r.PackageLines, trimmed)
	r.Fragment = append(r.Fragment, trimmed)
	if pkg, ok := ParseLine(trimmed); ok && pkg.Name != "" {
		r.Packages.Add(pkg)
	}
}
