// Package journal keeps a tamper-evident record of policy transitions.
// Entries are JSON lines chained by SHA-256: each entry carries the hash
// of the previous line, so edits, insertions and deletions are detectable.
package journal

import (
	"errors"

	"toolbelt/internal/thermal"
)

// Op names for journal entries.
const (
	OpSelect = "select"
)

// Outcomes recorded per entry. Every failed selection maps to the
// outcome of the check that aborted it.
const (
	OutcomeOK                = "ok"
	OutcomeDeviceNotFound    = "device_not_found"
	OutcomeZoneNotFound      = "zone_not_found"
	OutcomeCapabilityMissing = "capability_missing"
	OutcomeNotSupported      = "not_supported"
	OutcomeVerifyFailed      = "verify_failed"
	OutcomeError             = "error"
)

// Entry is one line in the hash-chained JSONL journal.
// All fields are scalars (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp string `json:"ts"`
	ID        string `json:"id"`
	Op        string `json:"op"`
	Requested string `json:"requested"`
	Previous  string `json:"previous,omitempty"`
	Zone      string `json:"zone,omitempty"`
	Outcome   string `json:"outcome"`
	Detail    string `json:"detail,omitempty"`
	PrevHash  string `json:"prev_hash"`
}

// OutcomeFor maps a selection result to its journal outcome.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, thermal.ErrDeviceNotFound):
		return OutcomeDeviceNotFound
	case errors.Is(err, thermal.ErrZoneNotFound):
		return OutcomeZoneNotFound
	case errors.Is(err, thermal.ErrCapabilityMissing):
		return OutcomeCapabilityMissing
	case errors.Is(err, thermal.ErrNotSupported):
		return OutcomeNotSupported
	case errors.Is(err, thermal.ErrVerifyFailed):
		return OutcomeVerifyFailed
	default:
		return OutcomeError
	}
}
