// Package thermal switches the platform thermal policy exposed by the
// int3400 ACPI driver. A selection is a single-shot, fail-fast sequence:
// validate the control surface, quiesce the zone, write the policy UUID,
// re-enable the zone, verify the readback. Nothing is retried and nothing
// is rolled back.
package thermal

import (
	"errors"
	"fmt"
	"path"

	"toolbelt/internal/sysfs"
)

// Kernel interface of the int3400 driver. The names are kernel ABI.
const (
	DeviceDir = "/sys/devices/platform/INT3400:00"
	ZoneRoot  = "/sys/class/thermal"
	ZoneType  = "INT3400 Thermal"

	ModeEnabled  = "enabled"
	ModeDisabled = "disabled"
)

// DefaultZoneLimit bounds the thermal_zone<N> scan. int3400 zones register
// early; double-digit indexes have not been observed.
const DefaultZoneLimit = 10

// Terminal failures of the selection procedure. Every one aborts the run;
// none is retried.
var (
	ErrDeviceNotFound    = errors.New("INT3400 platform device not found")
	ErrZoneNotFound      = errors.New("no thermal zone of type INT3400 Thermal")
	ErrCapabilityMissing = errors.New("thermal zone exposes no mode file")
	ErrNotSupported      = errors.New("uuid not supported by this platform")
	ErrVerifyFailed      = errors.New("current_uuid does not match written uuid")
)

// Paths locates the control files the selector touches. The zero value is
// unusable; start from DefaultPaths.
type Paths struct {
	Device    string // platform device directory
	ZoneRoot  string // directory holding thermal_zone<N>
	ZoneLimit int    // candidate zones scanned: [0, ZoneLimit)
}

// DefaultPaths returns the kernel's int3400 layout.
func DefaultPaths() Paths {
	return Paths{Device: DeviceDir, ZoneRoot: ZoneRoot, ZoneLimit: DefaultZoneLimit}
}

// Available returns the path of the newline-delimited policy enumeration.
func (p Paths) Available() string { return path.Join(p.Device, "uuids", "available_uuids") }

// Current returns the path of the current-selection file.
func (p Paths) Current() string { return path.Join(p.Device, "uuids", "current_uuid") }

// ZoneDir returns the path of the i-th candidate zone directory.
func (p Paths) ZoneDir(i int) string { return fmt.Sprintf("%s/thermal_zone%d", p.ZoneRoot, i) }

// Zone is one candidate zone directory found during a scan.
type Zone struct {
	Index int
	Dir   string
	Type  string
	Mode  string // "" when the zone has no readable mode file
}

// Transition reports a completed policy selection.
type Transition struct {
	UUID     string
	Previous string // current_uuid before the switch, "" when unreadable
	Zone     Zone
}

// Status is a read-only snapshot of the control surface.
type Status struct {
	DevicePresent bool
	Zone          *Zone
	Current       string
	Available     []string
}

// Selector performs one-shot policy transitions against a Surface. It
// holds no state across invocations.
type Selector struct {
	fs    sysfs.Surface
	paths Paths

	// Logf, when set, receives one progress line per state change.
	Logf func(format string, args ...any)
}

// New returns a Selector over fs using the given control-file layout.
func New(fs sysfs.Surface, paths Paths) *Selector {
	return &Selector{fs: fs, paths: paths}
}

func (s *Selector) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Select switches the platform thermal policy to id.
//
// The zone is quiesced before the selection write and re-enabled after,
// because the firmware may ignore a current_uuid write while the zone is
// active. The readback check exists because a write can be accepted but
// not applied. On any failure after the disable step the zone is left
// disabled: re-enabling with an unverified policy is unsafe.
func (s *Selector) Select(id string) (*Transition, error) {
	if id == "" {
		return nil, errors.New("empty policy uuid")
	}

	if !s.fs.Exists(s.paths.Device) {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, s.paths.Device)
	}

	zone, err := s.matchZone()
	if err != nil {
		return nil, err
	}
	s.logf("matched %s (type %q)", zone.Dir, zone.Type)

	modePath := path.Join(zone.Dir, "mode")
	if !s.fs.Exists(modePath) {
		return nil, fmt.Errorf("%w: %s (kernel lacks thermal zone mode support)", ErrCapabilityMissing, zone.Dir)
	}

	supported, err := s.supported(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s unreadable: %v", ErrNotSupported, s.paths.Available(), err)
	}
	if !supported {
		return nil, fmt.Errorf("%w: %s", ErrNotSupported, id)
	}

	// Informational only; some firmware leaves current_uuid empty until
	// the first selection.
	previous, _ := s.fs.ReadLine(s.paths.Current())

	s.logf("disabling %s", zone.Dir)
	if err := s.fs.WriteLine(modePath, ModeDisabled); err != nil {
		return nil, fmt.Errorf("disable zone: %w", err)
	}

	s.logf("writing %s to current_uuid", id)
	if err := s.fs.WriteLine(s.paths.Current(), id); err != nil {
		return nil, fmt.Errorf("write current_uuid: %w", err)
	}

	s.logf("enabling %s", zone.Dir)
	if err := s.fs.WriteLine(modePath, ModeEnabled); err != nil {
		return nil, fmt.Errorf("enable zone: %w", err)
	}

	got, err := s.fs.ReadLine(s.paths.Current())
	if err != nil {
		return nil, fmt.Errorf("%w: readback failed: %v", ErrVerifyFailed, err)
	}
	if got != id {
		return nil, fmt.Errorf("%w: wrote %s, read back %s", ErrVerifyFailed, id, got)
	}

	zone.Mode = ModeEnabled
	return &Transition{UUID: id, Previous: previous, Zone: zone}, nil
}

// matchZone scans thermal_zone0..thermal_zone<limit-1> and returns the
// first whose type equals ZoneType exactly.
func (s *Selector) matchZone() (Zone, error) {
	for i := 0; i < s.paths.ZoneLimit; i++ {
		dir := s.paths.ZoneDir(i)
		zt, err := s.fs.ReadLine(path.Join(dir, "type"))
		if err != nil || zt != ZoneType {
			continue
		}
		z := Zone{Index: i, Dir: dir, Type: zt}
		if mode, err := s.fs.ReadLine(path.Join(dir, "mode")); err == nil {
			z.Mode = mode
		}
		return z, nil
	}
	return Zone{}, fmt.Errorf("%w: scanned thermal_zone0..thermal_zone%d under %s",
		ErrZoneNotFound, s.paths.ZoneLimit-1, s.paths.ZoneRoot)
}

// supported reports whether id is a full-line member of available_uuids.
// Substring and prefix matches never count.
func (s *Selector) supported(id string) (bool, error) {
	lines, err := s.fs.ReadLines(s.paths.Available())
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if line == id {
			return true, nil
		}
	}
	return false, nil
}

// Available returns the platform's policy enumeration.
func (s *Selector) Available() ([]string, error) {
	if !s.fs.Exists(s.paths.Device) {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, s.paths.Device)
	}
	lines, err := s.fs.ReadLines(s.paths.Available())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.paths.Available(), err)
	}
	return lines, nil
}

// Zones returns every candidate zone directory that exposes a type file,
// whatever its type.
func (s *Selector) Zones() []Zone {
	var zones []Zone
	for i := 0; i < s.paths.ZoneLimit; i++ {
		dir := s.paths.ZoneDir(i)
		zt, err := s.fs.ReadLine(path.Join(dir, "type"))
		if err != nil {
			continue
		}
		z := Zone{Index: i, Dir: dir, Type: zt}
		if mode, err := s.fs.ReadLine(path.Join(dir, "mode")); err == nil {
			z.Mode = mode
		}
		zones = append(zones, z)
	}
	return zones
}

// Snapshot reports what the selector can see without changing anything.
func (s *Selector) Snapshot() *Status {
	st := &Status{DevicePresent: s.fs.Exists(s.paths.Device)}
	if zone, err := s.matchZone(); err == nil {
		st.Zone = &zone
	}
	if cur, err := s.fs.ReadLine(s.paths.Current()); err == nil {
		st.Current = cur
	}
	if avail, err := s.fs.ReadLines(s.paths.Available()); err == nil {
		st.Available = avail
	}
	return st
}
