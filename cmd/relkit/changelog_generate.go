package main

import (
	"os"
	"time"

	"github.com/easymingw/relkit/internal/changelog"
	"github.com/easymingw/relkit/internal/common/config"
	"github.com/easymingw/relkit/internal/common/github"
	"github.com/easymingw/relkit/internal/common/logger"
	"github.com/easymingw/relkit/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	generateInputFile  string
	generateOutputFile string
	generatePrevTag    string
	generateBuildTag   string
	generateCurrentTag string
	generateOwner      string
	generateRepo       string
	generateToken      string
	generateProfile    string
	generateTimeout    int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate changelog Markdown from package info",
	Long: `Generate a changelog Markdown document for a release by comparing its
package manifest against a previous release.

The current package info comes either from a local build log (--input-file)
or from an existing GitHub release (--current-tag). When both are given,
--current-tag wins. The previous release is always fetched from GitHub;
omitting --prev-tag skips the comparison and the changelog notes that
there was no previous version to compare against.

Examples:
  relkit changelog generate --input-file build.log --current-build-tag 2025.06.09 --output-file notes.md
  relkit changelog generate --current-tag 2025.06.09 --prev-tag 2025.04.27 --current-build-tag 2025.06.09 --output-file notes.md`,
	Run: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateInputFile, "input-file", "", "Build log with the current package info")
	generateCmd.Flags().StringVar(&generateOutputFile, "output-file", "", "Path to write the generated Markdown")
	generateCmd.Flags().StringVar(&generatePrevTag, "prev-tag", "", "Previous release tag to compare against")
	generateCmd.Flags().StringVar(&generateBuildTag, "current-build-tag", "", "Tag of the release being built")
	generateCmd.Flags().StringVar(&generateCurrentTag, "current-tag", "", "Fetch current package info from this release tag instead of --input-file")
	generateCmd.Flags().StringVar(&generateOwner, "owner", "", "GitHub repository owner")
	generateCmd.Flags().StringVar(&generateRepo, "repo", "", "GitHub repository name")
	generateCmd.Flags().StringVar(&generateToken, "token", "", "GitHub API token")
	generateCmd.Flags().StringVar(&generateProfile, "profile", "", "Manifest profile TOML file")
	generateCmd.Flags().IntVar(&generateTimeout, "timeout", 10, "HTTP request timeout in seconds")
	generateCmd.MarkFlagRequired("output-file")
	generateCmd.MarkFlagRequired("current-build-tag")
	changelogCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	if generateInputFile == "" && generateCurrentTag == "" {
		logger.Error("Either --input-file or --current-tag must be provided")
		os.Exit(1)
	}
	if generateInputFile != "" && generateCurrentTag != "" {
		logger.Info("Both --input-file and --current-tag provided, using --current-tag")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	owner, repo := resolveRepository(cfg, generateOwner, generateRepo)
	client := newReleaseClient(cfg, generateToken, generateTimeout)

	gen := changelog.NewGenerator(client, owner, repo)
	gen.Profile = loadManifestProfile(cfg, generateProfile)

	document, err := gen.Generate(changelog.GenerateOptions{
		InputFile:       generateInputFile,
		CurrentTag:      generateCurrentTag,
		PrevTag:         generatePrevTag,
		CurrentBuildTag: generateBuildTag,
	})
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(generateOutputFile, []byte(document), 0644); err != nil {
		logger.Error("writing %s: %v", generateOutputFile, err)
		os.Exit(1)
	}
	logger.Info("Wrote changelog to %s", generateOutputFile)
}

// resolveRepository applies the flag > config > built-in default priority
// for the repository coordinates.
func resolveRepository(cfg *config.Config, owner, repo string) (string, string) {
	if owner == "" {
		owner = cfg.Owner()
	}
	if repo == "" {
		repo = cfg.Repo()
	}
	return owner, repo
}

// newReleaseClient builds a GitHub client with the token priority
// flag > env > config.
func newReleaseClient(cfg *config.Config, token string, timeoutSecs int) *github.Client {
	client := github.NewClient()
	if token != "" {
		client.Token = token
	} else if client.Token == "" {
		client.Token = cfg.GitHub.Token
	}
	if timeoutSecs > 0 {
		client.HTTPClient.Timeout = time.Duration(timeoutSecs) * time.Second
	}
	return client
}

// loadManifestProfile resolves the manifest profile from the flag or the
// config file, exiting on a broken profile. No profile means the built-in
// winlibs defaults.
func loadManifestProfile(cfg *config.Config, path string) *manifest.Profile {
	if path == "" {
		path = cfg.Changelog.Profile
	}
	if path == "" {
		return manifest.DefaultProfile()
	}
	profile, err := manifest.LoadProfile(path)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	logger.Debug("Loaded manifest profile from %s", path)
	return profile
}
