package systemd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UnitHashPath stores the install-time hash of the unit file.
var UnitHashPath = "/var/lib/toolbelt/unit-file.sha256"

// CheckUnitIntegrity compares the installed unit file against the hash
// recorded at install time. Returns a warning message if the unit file
// has been modified, or empty string if integrity is confirmed or
// checking is not applicable (no unit file or no stored hash).
func CheckUnitIntegrity(dir string) string {
	unitPath := filepath.Join(dir, UnitName)
	if _, err := os.Stat(unitPath); err != nil {
		return "" // Not installed.
	}

	stored, err := os.ReadFile(UnitHashPath)
	if err != nil {
		return "" // No stored hash, first install or manual setup.
	}
	expectedHash := strings.TrimSpace(string(stored))
	if len(expectedHash) != 64 {
		return "" // Invalid stored hash.
	}

	data, err := os.ReadFile(unitPath)
	if err != nil {
		return fmt.Sprintf("cannot read unit file %s: %v", unitPath, err)
	}
	h := sha256.Sum256(data)
	actualHash := hex.EncodeToString(h[:])

	if actualHash == expectedHash {
		return ""
	}

	return fmt.Sprintf("unit file %s has been modified since installation (expected %s, got %s)",
		unitPath, expectedHash[:16], actualHash[:16])
}

// RecordUnitHash writes the SHA-256 hash of the installed unit file to
// UnitHashPath. Called during installation to record the baseline.
func RecordUnitHash(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, UnitName))
	if err != nil {
		return fmt.Errorf("read unit file: %w", err)
	}
	h := sha256.Sum256(data)
	hash := hex.EncodeToString(h[:])

	if err := os.MkdirAll(filepath.Dir(UnitHashPath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	return os.WriteFile(UnitHashPath, []byte(hash+"\n"), 0600)
}
