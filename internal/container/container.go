// Package container provides dependency injection for the finhealth
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/finhealth/internal/analytics"
	"fjacquet/finhealth/internal/config"
	"fjacquet/finhealth/internal/diagnostics"
	"fjacquet/finhealth/internal/importer"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/normalizer"
	"fjacquet/finhealth/internal/report"
	"fjacquet/finhealth/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.Store
	importer   *importer.Importer
	normalizer *normalizer.Normalizer
	engine     *diagnostics.Engine
	analyzer   *analytics.Analyzer
	generator  *report.Generator
	format     report.Format
}

// NewContainer creates and wires all application dependencies, logging
// through logrus as configured.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	st := store.NewStore(cfg.Keywords.File, logger)
	keywords, err := st.LoadKeywords()
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword tables: %w", err)
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		store:      st,
		importer:   importer.New(cfg.Delimiter(), logger),
		normalizer: normalizer.New(logger),
		engine:     diagnostics.NewEngine(keywords, logger),
		analyzer:   analytics.NewAnalyzer(AnalyticsOptions(cfg), logger),
		generator:  report.NewGenerator(logger),
		format:     format,
	}

	logger.Debug("Container initialized",
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldDelimiter, cfg.CSV.Delimiter))
	return c, nil
}

// AnalyticsOptions maps the analytics section of the configuration onto the
// analyzer options.
func AnalyticsOptions(cfg *config.Config) analytics.Options {
	opts := analytics.DefaultOptions()
	opts.Months = cfg.Analytics.Months
	opts.TopCategories = cfg.Analytics.TopCategories
	opts.OutlierThreshold = cfg.Analytics.OutlierThreshold
	opts.RecurringMinOccurrences = cfg.Analytics.RecurringMinOccurrences
	opts.RecurringToleranceDays = cfg.Analytics.RecurringToleranceDays
	return opts
}

// LoadDataset imports and normalizes the transactions and accounts tables.
// An empty accountsPath yields a dataset without accounts.
func (c *Container) LoadDataset(transactionsPath, accountsPath string) (models.Dataset, error) {
	rawTxs, err := c.importer.LoadTransactions(transactionsPath)
	if err != nil {
		return models.Dataset{}, err
	}

	var rawAccounts []models.RawAccount
	if accountsPath != "" {
		rawAccounts, err = c.importer.LoadAccounts(accountsPath)
		if err != nil {
			return models.Dataset{}, err
		}
	}

	return c.normalizer.Dataset(rawTxs, rawAccounts), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the profile and keyword store.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetImporter returns the table importer.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// GetNormalizer returns the transaction normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetEngine returns the diagnostic engine.
func (c *Container) GetEngine() *diagnostics.Engine {
	return c.engine
}

// GetAnalyzer returns the trend and optimization analyzer.
func (c *Container) GetAnalyzer() *analytics.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// OutputFormat returns the configured default report format.
func (c *Container) OutputFormat() report.Format {
	return c.format
}

// LoadProfile reads an optional user profile. An empty path yields nil.
func (c *Container) LoadProfile(path string) (*models.UserProfile, error) {
	return c.store.LoadProfile(path)
}

// Diagnose runs the diagnostic engine over a dataset.
func (c *Container) Diagnose(ds models.Dataset, profile *models.UserProfile) *diagnostics.Report {
	return c.engine.Run(ds, profile)
}

// Analyze runs the trend and optimization analytics over a dataset.
func (c *Container) Analyze(ds models.Dataset, profile *models.UserProfile) *analytics.Report {
	return c.analyzer.Analyze(ds, profile)
}
