// Package registry keeps the flat list of known dataset names.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the registry file created inside the data directory.
const DefaultFileName = "price_list_file.txt"

// ErrInvalidName rejects names that cannot round-trip through the registry file
// or that would escape the data directory.
var ErrInvalidName = errors.New("invalid dataset name")

// Registry is a newline-separated file of dataset names. Appends never
// deduplicate; callers check Contains first.
type Registry struct {
	path string
}

// Open returns a Registry backed by path. The file is created on first Append.
func Open(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the backing file.
func (r *Registry) Path() string { return r.path }

// List returns the registered names in file order.
func (r *Registry) List() ([]string, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var names []string
	for _, ln := range strings.Split(string(b), "\n") {
		ln = strings.TrimRight(ln, "\r")
		if ln != "" {
			names = append(names, ln)
		}
	}
	return names, nil
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) (bool, error) {
	names, err := r.List()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Append records name at the end of the registry.
func (r *Registry) Append(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("ensure registry dir: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	if _, err := f.WriteString("\n" + name); err != nil {
		f.Close()
		return fmt.Errorf("append registry: %w", err)
	}
	return f.Close()
}

// ValidateName checks that name can be stored as a single registry line and
// used as a file name.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), name == ".", name == "..":
		return fmt.Errorf("%w: %q is not a plain file name", ErrInvalidName, name)
	}
	return nil
}
