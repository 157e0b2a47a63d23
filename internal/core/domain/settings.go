package domain

// DeserializeSettings holds deserializer behaviour configuration.
type DeserializeSettings struct {
	// ScalarFailure decides whether undecodable property values abort a run.
	ScalarFailure ScalarFailurePolicy
}

// LanguageSettings holds language file configuration.
type LanguageSettings struct {
	// Paths are language definition files loaded by every command,
	// in addition to the ones given with --language.
	Paths []string
}

// StorageSettings holds metrics storage configuration.
type StorageSettings struct {
	// DataDir is where the metrics database lives.
	// Empty means ~/.lionweb/data.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Deserialize holds deserializer settings.
	Deserialize DeserializeSettings

	// Languages holds language file settings.
	Languages LanguageSettings

	// Storage holds metrics storage settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Deserialize: DeserializeSettings{
			ScalarFailure: ScalarFailureFatal,
		},
	}
}

// AllScalarFailurePolicies returns all available scalar failure policies.
func AllScalarFailurePolicies() []ScalarFailurePolicy {
	return []ScalarFailurePolicy{
		ScalarFailureFatal,
		ScalarFailureDrop,
	}
}
