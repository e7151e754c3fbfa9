package cli

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/spf13/cobra"

	"toolbelt/internal/config"
	"toolbelt/internal/journal"
	"toolbelt/internal/sysfs"
	"toolbelt/internal/systemd"
	"toolbelt/internal/thermal"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system readiness and diagnose configuration issues",
	RunE:  runDoctor,
}

type checkResult struct {
	label  string
	ok     bool
	detail string
	fix    string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []checkResult

	// 1. Binary location and version.
	execPath, _ := os.Executable()
	if execPath != "" {
		checks = append(checks, checkResult{
			label:  "toolbelt binary",
			ok:     true,
			detail: fmt.Sprintf("%s (v%s)", execPath, version),
		})
	} else {
		checks = append(checks, checkResult{
			label:  "toolbelt binary",
			ok:     false,
			detail: "cannot determine executable path",
		})
	}

	// 2. Config file.
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = config.DefaultPath()
	}
	if cfgFile == "" {
		checks = append(checks, checkResult{
			label:  "config file",
			ok:     false,
			detail: "cannot determine home directory",
		})
	} else if _, err := os.Stat(cfgFile); err == nil {
		checks = append(checks, checkResult{
			label:  "config file",
			ok:     true,
			detail: cfgFile,
		})
	} else {
		checks = append(checks, checkResult{
			label:  "config file",
			ok:     false,
			detail: "missing (defaults apply)",
			fix:    "toolbelt init",
		})
	}

	cfg, err := loadConfig()
	if err != nil {
		checks = append(checks, checkResult{
			label:  "config parse",
			ok:     false,
			detail: err.Error(),
		})
		cfg = config.Default()
	}

	fs := sysfs.OS{Root: cfg.Thermal.SysfsRoot}
	paths := cfg.Paths()

	// 3. INT3400 platform device.
	devicePresent := fs.Exists(paths.Device)
	if devicePresent {
		checks = append(checks, checkResult{
			label:  "INT3400 device",
			ok:     true,
			detail: paths.Device,
		})
	} else {
		checks = append(checks, checkResult{
			label:  "INT3400 device",
			ok:     false,
			detail: "not present (platform without the int3400 driver?)",
		})
	}

	// 4-6. Zone, mode and policy enumeration. Only meaningful with the
	// device in place.
	if devicePresent {
		sel := thermal.New(fs, paths)
		st := sel.Snapshot()

		if st.Zone != nil {
			checks = append(checks, checkResult{
				label:  "thermal zone",
				ok:     true,
				detail: st.Zone.Dir,
			})
			if fs.Exists(path.Join(st.Zone.Dir, "mode")) {
				checks = append(checks, checkResult{
					label:  "zone mode file",
					ok:     true,
					detail: "writable control present",
				})
			} else {
				checks = append(checks, checkResult{
					label:  "zone mode file",
					ok:     false,
					detail: "missing (kernel lacks thermal zone mode support)",
				})
			}
		} else {
			checks = append(checks, checkResult{
				label:  "thermal zone",
				ok:     false,
				detail: fmt.Sprintf("no zone of type %q found", thermal.ZoneType),
			})
		}

		if len(st.Available) > 0 {
			checks = append(checks, checkResult{
				label:  "available_uuids",
				ok:     true,
				detail: fmt.Sprintf("%d policies", len(st.Available)),
			})
		} else {
			checks = append(checks, checkResult{
				label:  "available_uuids",
				ok:     false,
				detail: "empty or unreadable",
			})
		}

		if st.Current != "" {
			checks = append(checks, checkResult{
				label:  "current_uuid",
				ok:     true,
				detail: st.Current,
			})
		} else {
			checks = append(checks, checkResult{
				label:  "current_uuid",
				ok:     false,
				detail: "unreadable or unset",
				fix:    "toolbelt thermal select",
			})
		}
	}

	// 7. Journal chain.
	if journalPath, err := cfg.JournalPath(); err == nil {
		if _, err := os.Stat(journalPath); os.IsNotExist(err) {
			checks = append(checks, checkResult{
				label:  "journal",
				ok:     true,
				detail: "empty (no transitions recorded)",
			})
		} else {
			result := journal.Verify(journalPath)
			if result.Valid {
				checks = append(checks, checkResult{
					label:  "journal",
					ok:     true,
					detail: fmt.Sprintf("%d entries, chain intact", result.Lines),
				})
			} else {
				checks = append(checks, checkResult{
					label:  "journal",
					ok:     false,
					detail: fmt.Sprintf("line %d: %s", result.ErrorLine, result.Error),
					fix:    "toolbelt journal tail",
				})
			}
		}
	}

	// 8. systemd unit (Linux only).
	if runtime.GOOS == "linux" {
		if systemd.Installed(systemd.DefaultUnitDir) {
			if msg := systemd.CheckUnitIntegrity(systemd.DefaultUnitDir); msg != "" {
				checks = append(checks, checkResult{
					label:  "systemd unit",
					ok:     false,
					detail: msg,
					fix:    "sudo toolbelt thermal install",
				})
			} else {
				checks = append(checks, checkResult{
					label:  "systemd unit",
					ok:     true,
					detail: "installed",
				})
			}
		} else {
			checks = append(checks, checkResult{
				label:  "systemd unit",
				ok:     false,
				detail: "not installed",
				fix:    "sudo toolbelt thermal install",
			})
		}
	}

	// Print results.
	hasFailures := false
	for _, c := range checks {
		mark := "✓" // ✓
		if !c.ok {
			mark = "✗" // ✗
			hasFailures = true
		}
		line := fmt.Sprintf("%s %-20s %s", mark, c.label+":", c.detail)
		if !c.ok && c.fix != "" {
			line += fmt.Sprintf("  ->  %s", c.fix)
		}
		fmt.Println(line)
	}

	if hasFailures {
		fmt.Println()
		fmt.Println("Some checks failed. Run the suggested commands to fix.")
		return fmt.Errorf("doctor found issues")
	}

	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}
