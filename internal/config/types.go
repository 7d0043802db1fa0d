package config

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level slidegen configuration, corresponding to .slidegen.yml.
type Config struct {
	Provider   ProviderType `yaml:"provider" koanf:"provider"`
	Model      string       `yaml:"model" koanf:"model"`
	Quality    QualityTier  `yaml:"quality" koanf:"quality"`
	Theme      string       `yaml:"theme" koanf:"theme"`
	Database   string       `yaml:"database" koanf:"database"`
	MaxSlides  int          `yaml:"max_slides" koanf:"max_slides"`
	MaxCostUSD float64      `yaml:"max_cost_usd" koanf:"max_cost_usd"`
	RequestsPM int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Server     ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
}
