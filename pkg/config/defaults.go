package config

const (
	defaultModelName = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096

	defaultMaxRounds = 20

	defaultPublishBranch = "main"
	defaultArtifactPath  = "index.html"

	defaultGeocodeBaseURL = "https://geocode.maps.co"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Model: ModelConfig{
			Name:      defaultModelName,
			MaxTokens: defaultMaxTokens,
		},
		Session: SessionConfig{
			MaxRounds: defaultMaxRounds,
		},
		Publish: PublishConfig{
			Branch:       defaultPublishBranch,
			ArtifactPath: defaultArtifactPath,
		},
		Geocode: GeocodeConfig{
			BaseURL: defaultGeocodeBaseURL,
		},
	}
}
