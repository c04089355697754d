package main

import (
	"fmt"
	"os"

	"github.com/easymingw/relkit/internal/changelog"
	"github.com/easymingw/relkit/internal/common/config"
	"github.com/easymingw/relkit/internal/common/github"
	"github.com/easymingw/relkit/internal/common/logger"
	"github.com/easymingw/relkit/internal/common/output"
	"github.com/easymingw/relkit/internal/manifest"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	diffOwner   string
	diffRepo    string
	diffToken   string
	diffProfile string
	diffTimeout int
)

var diffCmd = &cobra.Command{
	Use:   "diff <prev-tag> <current-tag>",
	Short: "Compare package sets between two releases",
	Long: `Compare the package manifests of two existing GitHub releases and print
the updated, added and removed packages.

Both releases are fetched from GitHub, so both tags must exist.

Examples:
  relkit changelog diff 2025.04.27 2025.06.09
  relkit changelog diff 2025.04.27 2025.06.09 --owner someuser --repo some-installer`,
	Args: cobra.ExactArgs(2),
	Run:  runChangelogDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffOwner, "owner", "", "GitHub repository owner")
	diffCmd.Flags().StringVar(&diffRepo, "repo", "", "GitHub repository name")
	diffCmd.Flags().StringVar(&diffToken, "token", "", "GitHub API token")
	diffCmd.Flags().StringVar(&diffProfile, "profile", "", "Manifest profile TOML file")
	diffCmd.Flags().IntVar(&diffTimeout, "timeout", 10, "HTTP request timeout in seconds")
	changelogCmd.AddCommand(diffCmd)
}

func runChangelogDiff(cmd *cobra.Command, args []string) {
	prevTag, currentTag := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	owner, repo := resolveRepository(cfg, diffOwner, diffRepo)
	client := newReleaseClient(cfg, diffToken, diffTimeout)
	scanner := manifest.NewMarkdownScanner(loadManifestProfile(cfg, diffProfile))

	if remaining, resetTime, err := client.GetRateLimitInfo(); err == nil && remaining < 10 {
		logger.Warn("GitHub API rate limit low: %d requests remaining (resets at %s)",
			remaining, resetTime.Format("15:04:05"))
	}

	prev := fetchManifest(client, scanner, owner, repo, prevTag)
	current := fetchManifest(client, scanner, owner, repo, currentTag)

	diff := changelog.Diff(current.Packages, prev.Packages)
	if diff.Empty() {
		output.PrintSuccess("No package changes between %s and %s", prevTag, currentTag)
		return
	}

	printDiffSection("Updated", output.Updated, diff.Updated)
	printDiffSection("Added", output.Added, diff.Added)
	printDiffSection("Removed", output.Removed, diff.Removed)

	fmt.Printf("\nUpdated: %d | Added: %d | Removed: %d | Compared: %s -> %s\n",
		len(diff.Updated), len(diff.Added), len(diff.Removed),
		output.FormatTag(prevTag), output.FormatTag(currentTag))
}

// fetchManifest fetches and scans one release body. A missing release or
// manifest is fatal here: unlike generation, both sides of an explicit
// diff are required inputs.
func fetchManifest(client *github.Client, scanner manifest.Scanner, owner, repo, tag string) *manifest.ScanResult {
	logger.Info("Fetching release '%s' from %s/%s", tag, owner, repo)
	lines, err := client.GetReleaseBodyLines(owner, repo, tag)
	if err != nil {
		logger.Error("fetching release '%s': %v", tag, err)
		os.Exit(1)
	}

	result := scanner.Scan(lines)
	if !result.SectionFound {
		logger.Error("No package manifest section found in release '%s'", tag)
		os.Exit(1)
	}
	if result.Packages.Len() == 0 {
		logger.Warn("Manifest section in release '%s' holds no parseable packages", tag)
	}
	return result
}

func printDiffSection(title string, c *color.Color, lines []string) {
	if len(lines) == 0 {
		return
	}
	output.Printf(c, "\n%s (%d):\n", title, len(lines))
	for _, line := range lines {
		fmt.Println("  " + line)
	}
}
