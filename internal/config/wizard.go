package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .slidegen.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to slidegen! Let's configure your workspace.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "openrouter", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fast & cheap (haiku / gpt-4o-mini)",
			"normal — balanced (sonnet / gpt-4o)",
			"max    — highest quality (opus / gpt-4)",
		},
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	quality := tiers[qualityIdx]

	preset := GetPreset(provider, quality)

	// 3. Theme.
	themePrompt := promptui.Select{
		Label: "Default slide theme",
		Items: Themes,
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 4. Database path.
	dbPrompt := promptui.Prompt{
		Label:   "Database file for sessions",
		Default: "slidegen.db",
	}
	database, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: "8080",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = preset.Model
	cfg.Quality = quality
	cfg.Theme = theme
	cfg.Database = database
	cfg.Server.Port = port

	// Check for API key.
	envVar := APIKeyEnvVar(provider)
	if envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running slidegen generate.\n", envVar)
		}
	}

	configPath := ".slidegen.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
