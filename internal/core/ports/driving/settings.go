package driving

import "github.com/custodia-labs/lionweb-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetScalarFailurePolicy updates how undecodable properties are handled.
	SetScalarFailurePolicy(policy domain.ScalarFailurePolicy) error

	// SetLanguagePaths updates the default language files.
	SetLanguagePaths(paths []string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
