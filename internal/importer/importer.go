// Package importer converts CSV files and spreadsheet workbooks into datasets.
package importer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/KaramelBytes/pricebook-cli/internal/dataset"
	"github.com/KaramelBytes/pricebook-cli/internal/registry"
	"github.com/KaramelBytes/pricebook-cli/internal/utils"
)

// Outcome is what happened to one import unit.
type Outcome string

const (
	Created     Outcome = "created"
	Overwritten Outcome = "overwritten"
	Skipped     Outcome = "skipped"
)

// ConflictError reports a unit whose dataset name is already registered.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("dataset %q already exists", e.Name)
}

// Confirmer decides whether an existing dataset may be overwritten.
type Confirmer interface {
	Confirm(name string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(name string) (bool, error)

func (f ConfirmFunc) Confirm(name string) (bool, error) { return f(name) }

// Always answers every conflict with the same decision.
func Always(overwrite bool) Confirmer {
	return ConfirmFunc(func(string) (bool, error) { return overwrite, nil })
}

// UnitResult describes a single imported unit.
type UnitResult struct {
	Name    string
	Sheet   string
	Path    string
	Outcome Outcome
	// Err is set for skipped units: a *ConflictError when the conflict was
	// declined or no confirmer was available.
	Err error
}

// Report lists the outcome of every unit of one source file.
type Report struct {
	Source string
	Units  []UnitResult
}

// Count returns how many units ended with outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, u := range r.Units {
		if u.Outcome == o {
			n++
		}
	}
	return n
}

// Importer writes dataset files into a store and records them in a registry.
type Importer struct {
	Store    *dataset.Store
	Registry *registry.Registry
	Logger   *log.Logger
}

// New returns an Importer. A nil logger uses the package default.
func New(store *dataset.Store, reg *registry.Registry, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{Store: store, Registry: reg, Logger: logger}
}

// Import reads path and writes each of its units as a dataset. Units whose
// name is already registered are only written when confirm approves; a nil
// confirm declines every conflict. A declined unit does not stop the others.
func (im *Importer) Import(path string, confirm Confirmer) (*Report, error) {
	units, err := ReadUnits(path)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	known, err := im.Registry.List()
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(known))
	for _, n := range known {
		existing[n] = true
	}
	if err := utils.EnsureDir(im.Store.Dir); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	rep := &Report{Source: path}
	for _, u := range units {
		res := UnitResult{Name: u.Name, Sheet: u.Sheet, Path: im.Store.Path(u.Name)}
		if err := registry.ValidateName(u.Name); err != nil {
			return rep, err
		}
		if existing[u.Name] {
			ok := false
			if confirm != nil {
				ok, err = confirm.Confirm(u.Name)
				if err != nil {
					return rep, fmt.Errorf("confirm overwrite of %s: %w", u.Name, err)
				}
			}
			if !ok {
				res.Outcome = Skipped
				res.Err = &ConflictError{Name: u.Name}
				im.Logger.Debug("skipped existing dataset", "name", u.Name)
				rep.Units = append(rep.Units, res)
				continue
			}
			if err := im.write(u, res.Path); err != nil {
				return rep, err
			}
			res.Outcome = Overwritten
		} else {
			if err := im.write(u, res.Path); err != nil {
				return rep, err
			}
			if err := im.Registry.Append(u.Name); err != nil {
				return rep, err
			}
			existing[u.Name] = true
			res.Outcome = Created
		}
		im.Logger.Debug("imported dataset", "name", u.Name, "outcome", res.Outcome, "path", res.Path)
		rep.Units = append(rep.Units, res)
	}
	return rep, nil
}

func (im *Importer) write(u Unit, dst string) error {
	if u.Rows == nil {
		if err := utils.CopyFile(u.SourcePath, dst); err != nil {
			return fmt.Errorf("copy %s: %w", u.Name, err)
		}
		return nil
	}
	err := utils.SafeWrite(dst, func(w io.Writer) error {
		return WriteQuoted(w, u.Rows)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", u.Name, err)
	}
	return nil
}
