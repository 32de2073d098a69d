package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"atelier/internal/domain/services"
)

// AnthropicPlanner implements the Planner interface against the Anthropic
// Messages API. The model is asked for a single JSON document carrying the
// plan, architecture and summary; anything else is an upstream failure.
type AnthropicPlanner struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	prompt    string
}

// NewAnthropicPlanner creates a new Anthropic-backed planner
func NewAnthropicPlanner(apiKey, model, prompt string) (*AnthropicPlanner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicPlanner{
		client:    &client,
		model:     model,
		maxTokens: 8192,
		prompt:    prompt,
	}, nil
}

// Name returns the provider name
func (p *AnthropicPlanner) Name() string {
	return "anthropic"
}

// planDocument is the JSON shape the model is instructed to produce
type planDocument struct {
	Plan         map[string]interface{} `json:"plan"`
	Architecture map[string]interface{} `json:"architecture"`
	Summary      string                 `json:"summary"`
}

// Invoke produces a plan from the intake payload
func (p *AnthropicPlanner) Invoke(ctx context.Context, intake map[string]interface{}) (*services.PlanResult, error) {
	intakeJSON, err := json.Marshal(intake)
	if err != nil {
		return nil, fmt.Errorf("encode intake: %w", err)
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: p.prompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(string(intakeJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("anthropic response contained no text")
	}

	var doc planDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decode plan document: %w", err)
	}
	if doc.Plan == nil || doc.Architecture == nil {
		return nil, fmt.Errorf("plan document missing plan or architecture")
	}

	return &services.PlanResult{
		Plan:         doc.Plan,
		Architecture: doc.Architecture,
		Summary:      doc.Summary,
	}, nil
}
