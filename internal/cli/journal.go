package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolbelt/internal/journal"
)

var tailLines int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalVerifyCmd)
	journalCmd.AddCommand(journalTailCmd)
	journalTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent entries to show")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Transition journal operations",
	Long:  "Commands for verifying and inspecting the hash-chained journal of\nthermal policy transitions.",
}

var journalVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of the journal",
	Long:  "Walks the JSONL journal and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalVerify,
}

var journalTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent journal entries",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalTail,
}

// journalArg resolves the optional path argument against the config.
func journalArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.JournalPath()
}

func runJournalVerify(cmd *cobra.Command, args []string) error {
	path, err := journalArg(args)
	if err != nil {
		return err
	}

	result := journal.Verify(path)
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runJournalTail(cmd *cobra.Command, args []string) error {
	path, err := journalArg(args)
	if err != nil {
		return err
	}

	entries, err := journal.Tail(path, tailLines)
	if err != nil {
		return err
	}
	fmt.Print(journal.Format(entries))
	return nil
}
