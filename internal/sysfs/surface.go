// Package sysfs abstracts the kernel's file-based control surface so that
// procedures reading and writing it can run against an in-memory fake.
package sysfs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Surface is a tree of readable/writable text files exposed by the
// platform. Its lifecycle belongs to the kernel; implementations only
// provide access.
type Surface interface {
	// Exists reports whether path is present on the surface.
	Exists(path string) bool

	// ReadLine returns the first line of the file at path, trimmed of
	// surrounding whitespace. Reading a missing file is an error, never "".
	ReadLine(path string) (string, error)

	// ReadLines returns every non-empty line of the file at path, each
	// trimmed of surrounding whitespace.
	ReadLines(path string) ([]string, error)

	// WriteLine writes value followed by a newline to the file at path.
	WriteLine(path, value string) error
}

// OS is the real control surface. Root, when non-empty, is prefixed to
// every path so the whole surface can be rebased for tests or chroots.
type OS struct {
	Root string
}

func (o OS) resolve(path string) string {
	if o.Root == "" {
		return path
	}
	return filepath.Join(o.Root, path)
}

// Exists reports whether path exists under the surface root.
func (o OS) Exists(path string) bool {
	_, err := os.Stat(o.resolve(path))
	return err == nil
}

// ReadLine returns the first line of path, trimmed.
func (o OS) ReadLine(path string) (string, error) {
	f, err := os.Open(o.resolve(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s: empty file", path)
}

// ReadLines returns all non-empty lines of path, trimmed.
func (o OS) ReadLines(path string) ([]string, error) {
	f, err := os.Open(o.resolve(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteLine writes value plus a newline to path. The file must already
// exist: control files are created by the kernel, not by userspace.
func (o OS) WriteLine(path, value string) error {
	f, err := os.OpenFile(o.resolve(path), os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
