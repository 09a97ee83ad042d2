// Package store persists business profiles as JSON documents on disk, one
// file per business under a data directory. The format mirrors the profile
// files written by earlier versions of the product, so existing data loads
// unchanged.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/trackingsuccess/profit-planner/internal/plan"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no profile exists for the requested name.
var ErrNotFound = errors.New("profile not found")

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Slug converts a business name into a safe file stem.
func Slug(name string) string {
	s := strings.Trim(slugPattern.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "business"
	}
	return s
}

// Store reads and writes profiles under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates the data directory if needed and returns a store over it.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, Slug(name)+".json")
}

// List returns the sorted profile names (file stems) present on disk.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and normalizes a profile. Structural repair of partial monthly
// data happens here, at the boundary, so callers always see complete plans.
func (s *Store) Load(name string) (*plan.Profile, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}
	var profile plan.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	profile.Normalize()
	return &profile, nil
}

// Save writes the profile as indented JSON.
func (s *Store) Save(name string, profile *plan.Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", name, err)
	}
	path := s.path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", name, err)
	}
	s.logger.Debug("profile saved",
		zap.String("op", "store.Save"),
		zap.String("path", path),
	)
	return nil
}

// Delete removes a profile file. Deleting a profile that does not exist
// returns ErrNotFound.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	s.logger.Info("profile deleted",
		zap.String("op", "store.Delete"),
		zap.String("name", name),
	)
	return nil
}
