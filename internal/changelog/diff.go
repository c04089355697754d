// Package changelog compares package manifests between releases and
// assembles the release changelog document.
package changelog

import (
	"fmt"

	"github.com/easymingw/relkit/internal/manifest"
)

// DiffResult holds the rendered changelog lines of one comparison, grouped
// by change kind. Within each group, lines keep the encounter order of the
// manifest they came from: updated and added follow the current manifest,
// removed follows the previous one.
type DiffResult struct {
	Updated []string
	Added   []string
	Removed []string
}

// Empty reports whether the comparison produced no changes at all.
func (d *DiffResult) Empty() bool {
	return len(d.Updated) == 0 && len(d.Added) == 0 && len(d.Removed) == 0
}

// Lines returns updated, added and removed entries as one flat list, in
// that group order.
func (d *DiffResult) Lines() []string {
	lines := make([]string, 0, len(d.Updated)+len(d.Added)+len(d.Removed))
	lines = append(lines, d.Updated...)
	lines = append(lines, d.Added...)
	lines = append(lines, d.Removed...)
	return lines
}

// Diff compares the current manifest against the previous one. Versions
// are compared only for string equality; an entry with no version renders
// as "N/A". Packages present in both manifests with equal versions emit
// nothing.
func Diff(current, previous *manifest.Mapping) *DiffResult {
	result := &DiffResult{}

	for _, name := range current.Names() {
		cur, _ := current.Get(name)
		prev, ok := previous.Get(name)
		if !ok {
			result.Added = append(result.Added, cur.FullLine+" (added)")
			continue
		}
		if cur.Version == prev.Version {
			continue
		}
		line := fmt.Sprintf("- %s (%s -> %s)", cur.Name, prev.DisplayVersion(), cur.DisplayVersion())
		if cur.ExtraInfo != "" {
			line += " " + cur.ExtraInfo
		}
		result.Updated = append(result.Updated, line)
	}

	for _, name := range previous.Names() {
		if current.Has(name) {
			continue
		}
		prev, _ := previous.Get(name)
		result.Removed = append(result.Removed, prev.FullLine+" (removed)")
	}

	return result
}

// NoChangeReason explains why a comparison produced an empty DiffResult.
// The four reasons are mutually exclusive and select the fallback message
// rendered in place of the change list.
type NoChangeReason int

const (
	// ReasonNoPreviousTag: no previous tag was supplied, nothing compared.
	ReasonNoPreviousTag NoChangeReason = iota
	// ReasonIdentical: the previous manifest was parsed and matches the
	// current one.
	ReasonIdentical
	// ReasonUnparseable: the previous release body was fetched but no
	// package list could be parsed from it.
	ReasonUnparseable
	// ReasonBodyMissing: the previous release body could not be retrieved.
	ReasonBodyMissing
)

// ClassifyNoChange picks the narrative reason for an empty diff result.
func ClassifyNoChange(prevTag string, prevBodyFetched, prevParsed bool) NoChangeReason {
	switch {
	case prevTag == "":
		return ReasonNoPreviousTag
	case prevBodyFetched && prevParsed:
		return ReasonIdentical
	case prevBodyFetched:
		return ReasonUnparseable
	default:
		return ReasonBodyMissing
	}
}

// Message renders the user-facing fallback line for the reason.
func (r NoChangeReason) Message(prevTag string) string {
	switch r {
	case ReasonNoPreviousTag:
		return "* No previous version to compare against."
	case ReasonIdentical:
		return fmt.Sprintf("* No package changes detected compared to the previous version (`%s`).", prevTag)
	case ReasonUnparseable:
		return fmt.Sprintf("* Previous release body for tag `'%s'` was found but no package list could be parsed.", prevTag)
	default:
		return "* Could not retrieve previous version's package list."
	}
}

// String returns a short identifier for logging.
func (r NoChangeReason) String() string {
	switch r {
	case ReasonNoPreviousTag:
		return "no-previous-tag"
	case ReasonIdentical:
		return "identical"
	case ReasonUnparseable:
		return "unparseable"
	case ReasonBodyMissing:
		return "body-missing"
	default:
		return "unknown"
	}
}
