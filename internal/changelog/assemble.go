package changelog

import (
	"fmt"
	"strings"
)

// Document accumulates the Markdown lines of a changelog. The final
// rendering joins them with single newlines and adds nothing else, so the
// blank-line and <br> spacing appended here is the canonical output
// format.
type Document struct {
	lines []string
}

// Append adds one or more lines to the document.
func (d *Document) Append(lines ...string) {
	d.lines = append(d.lines, lines...)
}

// Last returns the most recently appended line, or "" for an empty document.
func (d *Document) Last() string {
	if len(d.lines) == 0 {
		return ""
	}
	return d.lines[len(d.lines)-1]
}

// Lines returns the accumulated lines.
func (d *Document) Lines() []string {
	return d.lines
}

// String renders the document as UTF-8 Markdown, lines joined with a
// single newline and no extra trailing newline.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// AppendScriptChangelog adds the static installer-changes section.
func (d *Document) AppendScriptChangelog() {
	d.Append("## Script/Installer Changelogs", "* None", "")
}

// AppendPackageChangelog adds the package diff section. When the diff is
// empty the narrative fallback message takes its place, with an extra note
// when the current manifest itself is empty.
func (d *Document) AppendPackageChangelog(diff *DiffResult, reason NoChangeReason, prevTag string, currentEmpty bool) {
	d.Append("## Package Changelogs")
	if diff.Empty() {
		d.Append(reason.Message(prevTag))
		if currentEmpty {
			d.Append("* No current packages found to list.")
		}
	} else {
		d.Append(diff.Lines()...)
	}
	d.Append("")
}

// AppendCompareLink adds the Full Changelog comparison link and the
// closing File Hash heading. When either tag is missing the link degrades
// to a TODO placeholder naming what is absent; the return value reports
// whether a complete link was written.
func (d *Document) AppendCompareLink(owner, repo, prevTag, buildTag string) bool {
	d.Append("<br>", "")

	complete := prevTag != "" && buildTag != ""
	if complete {
		url := fmt.Sprintf("https://github.com/%s/%s/compare/%s...%s", owner, repo, prevTag, buildTag)
		d.Append("**Full Changelog**: " + url)
	} else {
		var sb strings.Builder
		sb.WriteString("**Full Changelog**: [TODO: Update link")
		if prevTag == "" {
			sb.WriteString(" - Previous project tag missing")
		}
		if buildTag == "" {
			sb.WriteString(" - Current build tag missing")
		}
		sb.WriteString("]")
		d.Append(sb.String())
	}

	d.Append("", "<br>", "", "### File Hash")
	return complete
}
