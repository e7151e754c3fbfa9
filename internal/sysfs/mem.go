package sysfs

import (
	"fmt"
	"strings"
)

// Write is one recorded WriteLine call.
type Write struct {
	Path  string
	Value string
}

// Mem is an in-memory Surface for tests. It records every write in order
// so callers can assert transition sequencing, and can simulate control
// files that accept writes without applying them.
type Mem struct {
	files  map[string]string
	dirs   map[string]bool
	frozen map[string]bool
	failW  map[string]error
	writes []Write
}

// NewMem returns an empty in-memory surface.
func NewMem() *Mem {
	return &Mem{
		files:  make(map[string]string),
		dirs:   make(map[string]bool),
		frozen: make(map[string]bool),
		failW:  make(map[string]error),
	}
}

// Set creates or replaces the file at path with content.
func (m *Mem) Set(path, content string) {
	m.files[path] = content
}

// Mkdir registers a directory with no files under it.
func (m *Mem) Mkdir(path string) {
	m.dirs[path] = true
}

// Freeze makes the file at path keep its current content: subsequent
// writes are recorded but not applied, like a control file whose value
// the firmware rejects silently.
func (m *Mem) Freeze(path string) {
	m.frozen[path] = true
}

// FailWrites makes every WriteLine to path return err.
func (m *Mem) FailWrites(path string, err error) {
	m.failW[path] = err
}

// Writes returns all recorded writes in order.
func (m *Mem) Writes() []Write {
	return m.writes
}

// Exists reports whether path is a known file, a registered directory, or
// an ancestor of either.
func (m *Mem) Exists(path string) bool {
	if _, ok := m.files[path]; ok {
		return true
	}
	if m.dirs[path] {
		return true
	}
	prefix := path + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// ReadLine returns the first line of the file at path, trimmed.
func (m *Mem) ReadLine(path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("%s: no such file", path)
	}
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line), nil
}

// ReadLines returns all non-empty lines of the file at path, trimmed.
func (m *Mem) ReadLines(path string) ([]string, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: no such file", path)
	}
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLine records the write and updates the file unless it is frozen.
func (m *Mem) WriteLine(path, value string) error {
	if err := m.failW[path]; err != nil {
		return err
	}
	m.writes = append(m.writes, Write{Path: path, Value: value})
	if !m.frozen[path] {
		m.files[path] = value + "\n"
	}
	return nil
}
