// Package pricebook exposes the operations the CLI and the terminal browser
// call: listing, loading, searching, and importing datasets.
package pricebook

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/KaramelBytes/pricebook-cli/internal/config"
	"github.com/KaramelBytes/pricebook-cli/internal/dataset"
	"github.com/KaramelBytes/pricebook-cli/internal/importer"
	"github.com/KaramelBytes/pricebook-cli/internal/layout"
	"github.com/KaramelBytes/pricebook-cli/internal/registry"
)

// Service ties the dataset store, the registry, and the layout policy together.
// It holds no display state; every call returns a freshly built result.
type Service struct {
	store    *dataset.Store
	registry *registry.Registry
	importer *importer.Importer
	policy   layout.Policy
	logger   *log.Logger
}

// New builds a Service from configuration.
func New(cfg *config.Global, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	regPath, err := cfg.RegistryPath()
	if err != nil {
		return nil, err
	}
	store := dataset.NewStore(cfg.DataDir, cfg.SniffBytes)
	reg := registry.Open(regPath)
	return &Service{
		store:    store,
		registry: reg,
		importer: importer.New(store, reg, logger),
		policy:   layout.Policy{Threshold: cfg.SpanThreshold, Span: cfg.SpanWidth},
		logger:   logger,
	}, nil
}

// RegistryPath returns the registry file backing Datasets.
func (s *Service) RegistryPath() string { return s.registry.Path() }

// Datasets returns the registered dataset names sorted case-insensitively.
func (s *Service) Datasets() ([]string, error) {
	names, err := s.registry.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// LoadDataset lays out the full dataset with the span policy applied.
func (s *Service) LoadDataset(name string) (layout.Result, error) {
	rows, err := s.store.Load(name)
	if err != nil {
		return layout.Result{}, err
	}
	res := layout.Compute(rows, s.policy)
	s.logger.Debug("loaded dataset", "name", name, "rows", res.Rows, "cols", res.Cols, "cells", len(res.Cells))
	return res, nil
}

// SearchDataset re-reads the dataset and keeps rows containing query. An empty
// query is equivalent to LoadDataset.
func (s *Service) SearchDataset(name, query string) (layout.Result, error) {
	rows, err := s.store.Load(name)
	if err != nil {
		return layout.Result{}, err
	}
	res := layout.Filter(rows, query, s.policy)
	s.logger.Debug("searched dataset", "name", name, "query", query, "matches", len(res.MatchedRows()))
	return res, nil
}

// ImportFile converts a CSV or workbook into datasets. confirm is consulted for
// every unit whose name is already registered.
func (s *Service) ImportFile(path string, confirm importer.Confirmer) (*importer.Report, error) {
	rep, err := s.importer.Import(path, confirm)
	if err != nil {
		return rep, err
	}
	s.logger.Info("import finished", "source", path,
		"created", rep.Count(importer.Created),
		"overwritten", rep.Count(importer.Overwritten),
		"skipped", rep.Count(importer.Skipped))
	return rep, nil
}
