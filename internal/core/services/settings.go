package services

import (
	"fmt"

	"github.com/custodia-labs/lionweb-cli/internal/core/domain"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lionweb-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyScalarFailure = "deserialize.scalar_failure"
	KeyLanguagePaths = "languages.paths"
	KeyDataDir       = "storage.data_dir"
)

// SettingKeys returns the recognised config keys in display order.
func SettingKeys() []string {
	return []string{KeyScalarFailure, KeyLanguagePaths, KeyDataDir}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Deserialize: domain.DeserializeSettings{
			ScalarFailure: s.getScalarFailure(defaults.Deserialize.ScalarFailure),
		},
		Languages: domain.LanguageSettings{
			Paths: s.configStore.GetStringSlice(KeyLanguagePaths),
		},
		Storage: domain.StorageSettings{
			DataDir: s.getString(KeyDataDir, defaults.Storage.DataDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(KeyScalarFailure, settings.Deserialize.ScalarFailure.String()); err != nil {
		return fmt.Errorf("save scalar failure policy: %w", err)
	}

	paths := settings.Languages.Paths
	if paths == nil {
		paths = []string{}
	}
	if err := s.configStore.Set(KeyLanguagePaths, paths); err != nil {
		return fmt.Errorf("save language paths: %w", err)
	}

	if err := s.configStore.Set(KeyDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}

	return nil
}

// SetScalarFailurePolicy updates how undecodable properties are handled.
func (s *SettingsService) SetScalarFailurePolicy(policy domain.ScalarFailurePolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("%w: scalar failure policy %q", domain.ErrInvalidInput, policy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Deserialize.ScalarFailure = policy
	return s.Save(settings)
}

// SetLanguagePaths updates the default language files.
func (s *SettingsService) SetLanguagePaths(paths []string) error {
	for _, p := range paths {
		if p == "" {
			return fmt.Errorf("%w: empty language path", domain.ErrInvalidInput)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Languages.Paths = paths
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getScalarFailure(defaultVal domain.ScalarFailurePolicy) domain.ScalarFailurePolicy {
	val := s.configStore.GetString(KeyScalarFailure)
	if val == "" {
		return defaultVal
	}
	policy := domain.ScalarFailurePolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
