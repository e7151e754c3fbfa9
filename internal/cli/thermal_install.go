package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"toolbelt/internal/systemd"
)

var (
	installUnitDir string
	installUUID    string
)

func init() {
	thermalInstallCmd.Flags().StringVar(&installUnitDir, "unit-dir", systemd.DefaultUnitDir, "Directory for the systemd unit file")
	thermalInstallCmd.Flags().StringVar(&installUUID, "uuid", "", "Policy applied at boot (default: configured default)")
	thermalCmd.AddCommand(thermalInstallCmd)
}

var thermalInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a systemd unit that applies the policy at boot",
	Long: "Writes a oneshot service that runs \"toolbelt thermal select\" once per\n" +
		"boot. The unit carries ConditionPathExists on the INT3400 device, so it\nstays inert on other platforms.",
	RunE: runThermalInstall,
}

func runThermalInstall(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("thermal install is only supported on Linux")
	}
	if installUnitDir == systemd.DefaultUnitDir && os.Geteuid() != 0 {
		return fmt.Errorf("thermal install requires root; run with sudo")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	uuid := installUUID
	if uuid == "" {
		uuid = cfg.Thermal.DefaultUUID
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot determine executable path: %w", err)
	}

	path, err := systemd.Install(installUnitDir, execPath, uuid)
	if err != nil {
		return err
	}

	if err := systemd.RecordUnitHash(installUnitDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot record unit hash: %v\n", err)
	}

	if err := exec.Command("systemctl", "daemon-reload").Run(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: systemctl daemon-reload failed: %v\n", err)
	}

	fmt.Printf("Installed %s\n", path)
	fmt.Println()
	fmt.Println("Enable it with:")
	fmt.Printf("  sudo systemctl enable --now %s\n", systemd.UnitName)
	return nil
}
