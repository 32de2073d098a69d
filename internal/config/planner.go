package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultPlannerPrompt = `You are the planning lead for a software delivery studio.
Given a project intake document as JSON, respond with a single JSON object:
{"plan": {...}, "architecture": {...}, "summary": "..."}.
The plan holds phased delivery steps, the architecture a component breakdown,
and the summary a two-sentence digest for the client. Respond with JSON only.`

// plannerFile is the YAML shape for planner overrides
type plannerFile struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Prompt   string `yaml:"prompt"`
}

// applyPlannerFile overlays planner settings from a YAML file onto cfg.
// A missing or malformed file is reported on stderr and ignored; env
// configuration still stands.
func applyPlannerFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: planner config %s: %v\n", path, err)
		return
	}

	var pf plannerFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		fmt.Fprintf(os.Stderr, "warning: planner config %s: %v\n", path, err)
		return
	}

	if pf.Provider != "" {
		cfg.PlannerProvider = pf.Provider
	}
	if pf.Model != "" {
		cfg.PlannerModel = pf.Model
	}
	if pf.Prompt != "" {
		cfg.PlannerPrompt = pf.Prompt
	}
}
