// Package store loads the user-supplied YAML documents: the profile holding
// goals and budgets, and the keyword tables that drive transaction family
// detection.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finhealth/internal/dateutils"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Store resolves and reads the YAML documents of a run.
type Store struct {
	KeywordsFile string
	logger       logging.Logger
}

// NewStore creates a Store. An empty keywordsFile means the built-in keyword
// tables are used.
func NewStore(keywordsFile string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{KeywordsFile: keywordsFile, logger: logger}
}

// FindConfigFile looks for a file in the current directory, ./config and
// $HOME/.finhealth, in that order.
func (s *Store) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".finhealth", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadKeywords returns the keyword tables of the configured file merged over
// the defaults. Lists left out of the file keep their default value. A
// missing file is not an error.
func (s *Store) LoadKeywords() (models.KeywordTables, error) {
	defaults := models.DefaultKeywordTables()
	if s.KeywordsFile == "" {
		return defaults.Merge(models.KeywordTables{}), nil
	}

	path, err := s.FindConfigFile(s.KeywordsFile)
	if err != nil {
		s.logger.Warn("Keywords file not found, using defaults",
			logging.F(logging.FieldFile, s.KeywordsFile))
		return defaults.Merge(models.KeywordTables{}), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.KeywordTables{}, fmt.Errorf("error reading keywords file: %w", err)
	}

	var tables models.KeywordTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return models.KeywordTables{}, &parsererror.ParseError{Parser: "yaml", Field: "keywords", Value: path, Err: err}
	}

	s.logger.Debug("Loaded keyword tables", logging.F(logging.FieldFile, path))
	return defaults.Merge(tables), nil
}

// LoadProfile reads a user profile. An empty path yields a nil profile, which
// every consumer treats as "no goals, no budgets".
func (s *Store) LoadProfile(path string) (*models.UserProfile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile: %w", err)
	}

	profile := &models.UserProfile{}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, &parsererror.ParseError{Parser: "yaml", Field: "profile", Value: path, Err: err}
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	s.logger.Debug("Loaded profile",
		logging.F(logging.FieldFile, path),
		logging.F("goals", len(profile.Goals)),
		logging.F("budgets", len(profile.Budgets)))
	return profile, nil
}

// ValidateProfile checks goals and budgets for values no projection can use.
func ValidateProfile(p *models.UserProfile) error {
	if p == nil {
		return nil
	}

	var errs []error
	for i, g := range p.Goals {
		if strings.TrimSpace(g.Name) == "" {
			errs = append(errs, fmt.Errorf("goal %d has no name", i+1))
		}
		if g.Target <= 0 {
			errs = append(errs, fmt.Errorf("goal %q must have a positive target", g.Name))
		}
		if g.Deadline != "" {
			if _, _, err := dateutils.ParseDate(g.Deadline); err != nil {
				errs = append(errs, fmt.Errorf("goal %q has an invalid deadline: %w", g.Name, err))
			}
		}
	}
	for category, limit := range p.Budgets {
		if limit < 0 {
			errs = append(errs, fmt.Errorf("budget for %q cannot be negative", category))
		}
	}
	return errors.Join(errs...)
}
