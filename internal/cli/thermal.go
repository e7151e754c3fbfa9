package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toolbelt/internal/config"
	"toolbelt/internal/journal"
	"toolbelt/internal/sysfs"
	"toolbelt/internal/thermal"
)

var thermalNoJournal bool

func init() {
	rootCmd.AddCommand(thermalCmd)
	thermalCmd.AddCommand(thermalSelectCmd)
	thermalSelectCmd.Flags().BoolVar(&thermalNoJournal, "no-journal", false, "skip the transition journal for this run")
}

var thermalCmd = &cobra.Command{
	Use:   "thermal",
	Short: "Inspect and switch the INT3400 thermal policy",
	Long:  "Commands against the int3400 ACPI driver's sysfs interface. Selection\nis single-shot and fail-fast: no retries, no rollback.",
}

var thermalSelectCmd = &cobra.Command{
	Use:   "select [uuid]",
	Short: "Switch the platform thermal policy",
	Long: "Disables the INT3400 thermal zone, writes the policy UUID to\n" +
		"current_uuid, re-enables the zone and verifies the readback.\n" +
		"Without an argument the configured default policy is selected.",
	Args: cobra.MaximumNArgs(1),
	Run:  runThermalSelect,
}

func runThermalSelect(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}

	id := cfg.Thermal.DefaultUUID
	if len(args) == 1 {
		id = args[0]
	}

	sel := newSelector(cfg)
	sel.Logf = stderrf

	tr, err := sel.Select(id)
	recordTransition(cfg, id, tr, err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		os.Exit(1)
	}

	if name := thermal.PolicyName(id); name != "" {
		stderrf("selected %s (%s)", id, name)
	} else {
		stderrf("selected %s", id)
	}
}

// newSelector builds a Selector over the real filesystem, honoring the
// configured sysfs root and zone scan limit.
func newSelector(cfg *config.Config) *thermal.Selector {
	return thermal.New(sysfs.OS{Root: cfg.Thermal.SysfsRoot}, cfg.Paths())
}

// recordTransition appends the attempt to the journal. Journal trouble is
// reported on stderr but never changes the selection result.
func recordTransition(cfg *config.Config, id string, tr *thermal.Transition, selErr error) {
	if thermalNoJournal || cfg.Thermal.NoJournal {
		return
	}
	path, err := cfg.JournalPath()
	if err != nil {
		stderrf("journal: %v", err)
		return
	}
	log, err := journal.Open(path)
	if err != nil {
		stderrf("journal: %v", err)
		return
	}
	defer log.Close()

	entry := journal.Entry{
		Op:        journal.OpSelect,
		Requested: id,
		Outcome:   journal.OutcomeFor(selErr),
	}
	if tr != nil {
		entry.Previous = tr.Previous
		entry.Zone = tr.Zone.Dir
	}
	if selErr != nil {
		entry.Detail = selErr.Error()
	}
	if err := log.Record(entry); err != nil {
		stderrf("journal: %v", err)
	}
}
