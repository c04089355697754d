package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/easymingw/relkit/internal/common/logger"
	"github.com/easymingw/relkit/internal/manifest"
)

var (
	// ErrNoInput is returned when neither an input file nor a current tag
	// is provided.
	ErrNoInput = errors.New("either an input file or a current tag is required")
	// ErrCurrentRelease is returned when the current release body cannot
	// be fetched. Unlike the previous release, the current one is a
	// required input.
	ErrCurrentRelease = errors.New("could not fetch body for current release")
)

// ReleaseSource supplies the body lines of a tagged release. The GitHub
// client satisfies it; tests inject fakes.
type ReleaseSource interface {
	GetReleaseBodyLines(owner, repo, tag string) ([]string, error)
}

// GenerateOptions configures one changelog generation run.
type GenerateOptions struct {
	// InputFile is the build log holding the current package info.
	// Ignored when CurrentTag is set.
	InputFile string
	// CurrentTag, when set, fetches the current package info from an
	// existing release instead of a local file.
	CurrentTag string
	// PrevTag is the release to compare against. Empty skips comparison.
	PrevTag string
	// CurrentBuildTag is the tag of the release being built, used in the
	// comparison link.
	CurrentBuildTag string
}

// Generator builds the changelog document for one release.
type Generator struct {
	Source  ReleaseSource
	Owner   string
	Repo    string
	Profile *manifest.Profile
	// ReadFile supplies the lines of a local input file. Defaults to
	// reading from disk; tests override it.
	ReadFile func(path string) ([]string, error)
}

// NewGenerator creates a Generator with the default profile and file reader.
func NewGenerator(source ReleaseSource, owner, repo string) *Generator {
	return &Generator{
		Source:   source,
		Owner:    owner,
		Repo:     repo,
		Profile:  manifest.DefaultProfile(),
		ReadFile: ReadLines,
	}
}

// Generate produces the full changelog document. Failures around the
// current release's inputs are returned as errors; anything about the
// previous release degrades to the narrative fallback instead.
func (g *Generator) Generate(opts GenerateOptions) (string, error) {
	current, err := g.scanCurrent(opts)
	if err != nil {
		return "", err
	}

	doc := &Document{}
	doc.Append(current.Fragment...)

	if len(current.PackageLines) == 0 && current.SectionFound {
		logger.Warn("Could not parse package list from input")
		if doc.Last() != "" {
			doc.Append("")
		}
	}

	doc.AppendScriptChangelog()

	// Previous side is best effort: the release may simply not exist yet.
	var prevFetched bool
	prevResult := &manifest.ScanResult{Packages: manifest.NewMapping()}
	if opts.PrevTag != "" {
		prevLines := g.fetchBodyLines(opts.PrevTag)
		prevFetched = len(prevLines) > 0
		prevResult = manifest.NewMarkdownScanner(g.Profile).Scan(prevLines)
	} else {
		logger.Info("No previous tag provided - skipping comparison")
	}

	diff := Diff(current.Packages, prevResult.Packages)
	reason := ClassifyNoChange(opts.PrevTag, prevFetched, prevResult.Packages.Len() > 0)
	doc.AppendPackageChangelog(diff, reason, opts.PrevTag, current.Packages.Len() == 0)

	if !doc.AppendCompareLink(g.Owner, g.Repo, opts.PrevTag, opts.CurrentBuildTag) {
		logger.Warn("Full changelog link is incomplete")
	}

	return doc.String(), nil
}

// scanCurrent obtains and scans the current release's package info, from a
// release body when CurrentTag is set and from the input file otherwise.
func (g *Generator) scanCurrent(opts GenerateOptions) (*manifest.ScanResult, error) {
	if opts.CurrentTag != "" {
		logger.Info("Fetching current package info from release tag '%s'", opts.CurrentTag)
		lines := g.fetchBodyLines(opts.CurrentTag)
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: tag '%s'", ErrCurrentRelease, opts.CurrentTag)
		}
		result := manifest.NewMarkdownScanner(g.Profile).Scan(lines)
		g.reportCurrent(result, opts.CurrentTag)
		return result, nil
	}

	if opts.InputFile == "" {
		return nil, ErrNoInput
	}

	readFile := g.ReadFile
	if readFile == nil {
		readFile = ReadLines
	}
	lines, err := readFile(opts.InputFile)
	if err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", opts.InputFile, err)
	}
	return manifest.NewBuildLogScanner(g.Profile).Scan(lines), nil
}

func (g *Generator) reportCurrent(result *manifest.ScanResult, tag string) {
	if len(result.PackageLines) == 0 {
		logger.Warn("No package list found in release '%s'", tag)
		return
	}
	logger.Info("Found %d packages in current release", len(result.PackageLines))
}

// fetchBodyLines degrades any fetch failure to an empty line sequence.
func (g *Generator) fetchBodyLines(tag string) []string {
	lines, err := g.Source.GetReleaseBodyLines(g.Owner, g.Repo, tag)
	if err != nil {
		logger.Warn("Could not fetch release '%s': %v", tag, err)
		return nil
	}
	return lines
}

// ReadLines reads a file and splits its contents into lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text on newlines, tolerating CRLF endings.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
