package cmd

import (
	"fmt"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/composer"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/config"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/db"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/llm"
	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `slidegen init` to create a config file", err)
	}
	return cfg, nil
}

// createProviderFromConfig creates an LLM provider based on config settings,
// wrapped with the configured rate limit and cost budget.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPM)
	}
	if cfg.MaxCostUSD > 0 {
		provider = llm.NewBudgetedProvider(provider, cfg.MaxCostUSD)
	}
	return provider, nil
}

// openEngine opens the database and wires a composer engine from config.
// The caller owns closing the returned database.
func openEngine(cfg *config.Config) (*composer.Engine, *db.DB, error) {
	database, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	engine := composer.NewEngine(session.NewStore(database), provider, cfg.Model, composer.Options{
		Theme:     cfg.Theme,
		MaxSlides: cfg.MaxSlides,
	})
	return engine, database, nil
}
