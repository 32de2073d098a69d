package planner

import (
	"fmt"
	"log/slog"

	"atelier/internal/config"
	"atelier/internal/domain/services"
)

// Setup selects the planner provider from configuration. The stub provider
// is used whenever so configured or no API key is present in dev, keeping
// local runs free of network calls.
func Setup(cfg *config.Config, logger *slog.Logger) (services.Planner, error) {
	switch cfg.PlannerProvider {
	case "anthropic":
		p, err := NewAnthropicPlanner(cfg.AnthropicAPIKey, cfg.PlannerModel, cfg.PlannerPrompt)
		if err != nil {
			if cfg.Environment != "prod" {
				logger.Warn("anthropic planner unavailable, falling back to stub", "error", err)
				return NewStubPlanner(), nil
			}
			return nil, err
		}
		logger.Info("planner initialized", "provider", "anthropic", "model", cfg.PlannerModel)
		return p, nil
	case "stub":
		logger.Info("planner initialized", "provider", "stub")
		return NewStubPlanner(), nil
	default:
		return nil, fmt.Errorf("unknown planner provider %q", cfg.PlannerProvider)
	}
}
