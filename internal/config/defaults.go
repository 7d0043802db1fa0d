package config

// QualityPreset describes the model to use for a given quality tier.
type QualityPreset struct {
	Model string
}

// qualityPresets maps each provider+quality combination to its model choice.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini"},
		QualityNormal: {Model: "gpt-4o"},
		QualityMax:    {Model: "gpt-4"},
	},
	ProviderOpenRouter: {
		QualityLite:   {Model: "openai/gpt-4o-mini"},
		QualityNormal: {Model: "anthropic/claude-sonnet-4-5"},
		QualityMax:    {Model: "anthropic/claude-opus-4-1"},
	},
	ProviderAnthropic: {
		QualityLite:   {Model: "claude-haiku-4-5-20251001"},
		QualityNormal: {Model: "claude-sonnet-4-5-20250929"},
		QualityMax:    {Model: "claude-opus-4-1-20250805"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3"},
		QualityNormal: {Model: "llama3"},
		QualityMax:    {Model: "llama3:70b"},
	},
}

// Themes are the built-in style presets a presentation can be seeded with.
// The theme name is passed to the model as a styling directive; "default"
// leaves styling entirely to the model.
var Themes = []string{"default", "corporate", "dark", "minimal", "vibrant"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderOpenAI,
		Model:      "gpt-4o",
		Quality:    QualityNormal,
		Theme:      "default",
		Database:   "slidegen.db",
		MaxSlides:  30,
		MaxCostUSD: 10.0,
		RequestsPM: 60,
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Returns the Normal OpenAI preset if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderOpenAI][QualityNormal]
}
