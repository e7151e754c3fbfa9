// Package systemd renders and installs the boot-time policy unit.
package systemd

import (
	"fmt"
	"os"
	"path/filepath"

	"toolbelt/internal/thermal"
)

// UnitName is the service that re-applies the thermal policy at boot.
const UnitName = "toolbelt-thermal.service"

// DefaultUnitDir is where the unit file is installed.
const DefaultUnitDir = "/etc/systemd/system"

// Unit returns a oneshot service that selects the thermal policy once per
// boot. ConditionPathExists keeps the unit inert on platforms without the
// INT3400 device.
func Unit(execPath, uuid string) string {
	return fmt.Sprintf(`[Unit]
Description=Select INT3400 thermal policy
ConditionPathExists=%s
After=sysinit.target

[Service]
Type=oneshot
ExecStart=%s thermal select %s
RemainAfterExit=yes

[Install]
WantedBy=multi-user.target
`, thermal.DeviceDir, execPath, uuid)
}

// Install writes the unit file into dir and returns its path.
func Install(dir, execPath, uuid string) (string, error) {
	path := filepath.Join(dir, UnitName)
	if err := os.WriteFile(path, []byte(Unit(execPath, uuid)), 0o644); err != nil {
		return "", fmt.Errorf("write unit file: %w", err)
	}
	return path, nil
}

// Installed reports whether the unit file exists in dir.
func Installed(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, UnitName))
	return err == nil
}
