package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Store owns the user's Settings and the profile catalog built from them.
// A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	path     string
	settings domain.Settings
	catalog  *Catalog
}

// Open loads the settings file at path and builds the catalog. It never fails:
// a missing or corrupt file yields the defaults.
func Open(path string) *Store {
	s := &Store{path: path, settings: Load(path)}
	s.rebuild()
	return s
}

// Load reads settings from path. Missing keys keep their defaults; a missing,
// unreadable or malformed file yields DefaultSettings.
func Load(path string) domain.Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("settings file unreadable, using defaults", "path", path, "error", err)
		}
		return domain.DefaultSettings()
	}

	s := domain.DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("settings file malformed, using defaults", "path", path, "error", err)
		return domain.DefaultSettings()
	}
	if !s.Theme.Valid() {
		s.Theme = domain.ThemeDark
	}
	return s
}

// Save writes settings to path atomically.
func Save(path string, s domain.Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding settings: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", domain.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing settings: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing settings: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replacing settings: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Save persists the current settings.
func (s *Store) Save() error {
	return Save(s.path, s.settings)
}

// persist saves and only logs on failure; profile edits must not be lost in
// memory because the disk refused them.
func (s *Store) persist() {
	if err := s.Save(); err != nil {
		slog.Warn("failed to save settings", "path", s.path, "error", err)
	}
}

// rebuild re-derives the catalog from the stored user profiles, dropping
// entries with a blank key, missing required fields, or a built-in key.
func (s *Store) rebuild() {
	s.catalog = NewCatalog(nil)

	kept := make(domain.ProfileSet, 0, len(s.settings.CustomProfiles))
	for _, p := range s.settings.CustomProfiles {
		if strings.TrimSpace(p.Key) == "" {
			slog.Warn("skipping custom profile without a key", "name", p.Name)
			continue
		}
		if missing := missingRequired(p); len(missing) > 0 {
			slog.Warn("skipping custom profile", "key", p.Key, "missing", strings.Join(missing, ","))
			continue
		}
		p = fillTemplate(p)
		if !s.catalog.put(p) {
			slog.Warn("custom profile shadows a built-in, skipping", "key", p.Key)
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		kept = nil
	}
	s.settings.CustomProfiles = kept

	if _, ok := s.catalog.Get(s.settings.ActiveProfile); !ok {
		first := s.catalog.First()
		slog.Warn("active profile not in catalog, falling back", "key", s.settings.ActiveProfile, "fallback", first.Key)
		s.settings.ActiveProfile = first.Key
	}
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() domain.Settings {
	return s.settings.Clone()
}

// Catalog returns the profile catalog.
func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// ListProfiles returns every profile, built-ins first.
func (s *Store) ListProfiles() []domain.Profile {
	return s.catalog.List()
}

// Active returns the currently selected profile.
func (s *Store) Active() domain.Profile {
	p, _ := s.catalog.Get(s.settings.ActiveProfile)
	return p
}

// UpdateInputs records the inputs of the latest calculation in memory.
func (s *Store) UpdateInputs(in domain.Inputs) {
	s.settings.Inputs = in
}

// SetTheme records the theme in memory.
func (s *Store) SetTheme(t domain.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrValidation, t)
	}
	s.settings.Theme = t
	return nil
}

// SetDates records the rate observation dates in memory.
func (s *Store) SetDates(d domain.Dates) {
	s.settings.Dates = d
}

// AddProfile validates in and stores it under the normalized key, replacing an
// existing user profile with the same key. Built-in keys are rejected.
func (s *Store) AddProfile(key string, in ProfileInput) (domain.Profile, error) {
	p, err := in.Build(key)
	if err != nil {
		return domain.Profile{}, err
	}
	if existing, ok := s.catalog.Get(p.Key); ok && existing.IsBuiltin() {
		return domain.Profile{}, fmt.Errorf("%w: key %q belongs to a built-in profile", domain.ErrValidation, p.Key)
	}

	s.catalog.put(p)
	s.settings.CustomProfiles = domain.ProfileSet(s.catalog.Users())
	s.persist()

	slog.Info("custom profile added", "key", p.Key)
	return p, nil
}

// DeleteProfile removes a user profile. Deleting a built-in is a silent no-op.
// If the deleted profile was active, the first profile in catalog order
// becomes active with its default rates.
func (s *Store) DeleteProfile(key string) error {
	p, ok := s.catalog.Get(key)
	if !ok {
		return fmt.Errorf("%w: profile %q", domain.ErrNotFound, key)
	}
	if p.IsBuiltin() {
		return nil
	}

	s.catalog.remove(key)
	s.settings.CustomProfiles = domain.ProfileSet(s.catalog.Users())
	if len(s.settings.CustomProfiles) == 0 {
		s.settings.CustomProfiles = nil
	}

	if s.settings.ActiveProfile == key {
		s.activate(s.catalog.First())
	}
	s.persist()

	slog.Info("custom profile deleted", "key", key)
	return nil
}

// SwitchActive makes key the active profile and replaces the rate inputs with
// the profile's default rates. Unsaved manual rate edits are discarded.
func (s *Store) SwitchActive(key string) error {
	p, ok := s.catalog.Get(key)
	if !ok {
		return fmt.Errorf("%w: profile %q", domain.ErrNotFound, key)
	}
	s.activate(p)
	s.persist()
	return nil
}

func (s *Store) activate(p domain.Profile) {
	s.settings.ActiveProfile = p.Key
	s.settings.Rates = p.DefaultRates
}
