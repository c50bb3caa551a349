package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/archgov/config"
	"github.com/c360studio/archgov/decision"
	"github.com/c360studio/archgov/metrics"
	"github.com/c360studio/archgov/relations"
	"github.com/c360studio/archgov/repository"
	"github.com/c360studio/archgov/rules"
)

// App is the main application that wires together all components.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	loader     *repository.Loader
	validator  *relations.Validator
	classifier *decision.Classifier
	metrics    *metrics.Collector

	registry *rules.Registry
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loader, err := repository.NewLoader(cfg.LoaderOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}

	classifier, err := decision.NewClassifier(cfg.DecisionConfig())
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		loader:     loader,
		validator:  relations.NewValidator(cfg.Validation.Options),
		classifier: classifier,
		metrics:    metrics.NewCollector("", nil),
	}, nil
}

// Load loads the governed documents, or every candidate file when all is
// set, and fails when the root holds none.
func (a *App) Load(ctx context.Context, all bool) (*repository.Collection, error) {
	start := time.Now()

	var (
		coll *repository.Collection
		err  error
	)
	if all {
		coll, err = a.loader.LoadAllFiles(ctx)
	} else {
		coll, err = a.loader.LoadAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := coll.Require(); err != nil {
		return nil, err
	}

	a.metrics.RecordLoad(coll.Len(), len(coll.Skipped()), time.Since(start))
	a.metrics.UpdateCacheEntries(a.loader.CacheLen())
	return coll, nil
}

// Validate loads the governed documents and runs the configured checks.
func (a *App) Validate(ctx context.Context) (*relations.Report, *repository.Collection, error) {
	coll, err := a.Load(ctx, false)
	if err != nil {
		return nil, nil, err
	}

	report := a.validator.Validate(coll.Map(), coll.MissingSection())
	a.metrics.RecordReport(report)

	a.logger.Info("Validation complete",
		"run", report.ID,
		"documents", report.Documents,
		"violations", len(report.Violations))
	return report, coll, nil
}

// Registry returns the rule-set registry: the built-in catalog plus any
// rule sets in the configured catalog directory.
func (a *App) Registry() (*rules.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}

	if a.cfg.Rules.CatalogDir == "" {
		a.registry = rules.Global()
		return a.registry, nil
	}

	reg, err := rules.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	if err := rules.LoadCatalogDir(reg, a.cfg.Rules.CatalogDir); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", a.cfg.Rules.CatalogDir, err)
	}
	a.logger.Debug("Loaded rule catalog", "dir", a.cfg.Rules.CatalogDir, "rule_sets", reg.Len())
	a.registry = reg
	return reg, nil
}
