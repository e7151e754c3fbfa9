package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolbelt/internal/contrib"
)

var (
	contribExtensions      []string
	contribExcludeCommits  []string
	contribExcludePaths    []string
	contribExcludePatterns []string
	contribOutput          string
	contribFormat          string
	contribWorkers         int
	contribNoSamples       bool
)

func init() {
	contribCmd.Flags().StringSliceVar(&contribExtensions, "extensions", nil, "File extensions to analyze, e.g. .go,.py (default: all)")
	contribCmd.Flags().StringSliceVar(&contribExcludeCommits, "exclude-commits", nil, "Commits (and their ancestors) to exclude")
	contribCmd.Flags().StringSliceVar(&contribExcludePaths, "exclude-paths", nil, "Paths or directories to exclude")
	contribCmd.Flags().StringSliceVar(&contribExcludePatterns, "exclude-patterns", nil, "Glob patterns to exclude, e.g. *.min.js")
	contribCmd.Flags().StringVarP(&contribOutput, "output", "o", "contributor-analysis", "Output file (extension added from format)")
	contribCmd.Flags().StringVar(&contribFormat, "format", contrib.FormatText, "Report format: txt, json or csv")
	contribCmd.Flags().IntVar(&contribWorkers, "workers", 0, "Concurrent file analyses (default: one per CPU)")
	contribCmd.Flags().BoolVar(&contribNoSamples, "no-sample-code", false, "Omit per-file line samples from the text report")
	rootCmd.AddCommand(contribCmd)
}

var contribCmd = &cobra.Command{
	Use:   "contrib <repo-path>",
	Short: "Analyze git repository contributors",
	Long: "Walks every tracked file with git blame to attribute the lines\n" +
		"currently in the tree, and git log to count lines added historically.\nWrites a per-contributor report.",
	Args: cobra.ExactArgs(1),
	RunE: runContrib,
}

func runContrib(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags win; config fills in what was not given.
	extensions := contribExtensions
	if len(extensions) == 0 {
		extensions = cfg.Contrib.Extensions
	}
	excludePaths := contribExcludePaths
	if len(excludePaths) == 0 {
		excludePaths = cfg.Contrib.ExcludePaths
	}
	excludePatterns := contribExcludePatterns
	if len(excludePatterns) == 0 {
		excludePatterns = cfg.Contrib.ExcludePatterns
	}

	switch contribFormat {
	case contrib.FormatText, contrib.FormatJSON, contrib.FormatCSV:
	default:
		return fmt.Errorf("unknown format %q: use txt, json or csv", contribFormat)
	}

	analyzer := contrib.New(contrib.Options{
		RepoPath:        args[0],
		Extensions:      extensions,
		ExcludeCommits:  contribExcludeCommits,
		ExcludePaths:    excludePaths,
		ExcludePatterns: excludePatterns,
		Workers:         contribWorkers,
		Logf:            stderrf,
	})

	result, err := analyzer.Run(cmd.Context())
	if err != nil {
		return err
	}

	outPath := contrib.OutputPath(contribOutput, contribFormat)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := contrib.WriteReport(f, result, contribFormat, !contribNoSamples); err != nil {
		return err
	}

	stderrf("report written to %s", outPath)
	return nil
}
