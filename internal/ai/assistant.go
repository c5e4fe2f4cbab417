// Package ai integrates the Gemini text completion API for the editor
// assistant: chat with editor context, code refactoring, and test
// generation. A missing credential degrades every call to an explicit
// unavailable response instead of failing construction.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/schema"
)

const unavailableMessage = "AI service not available. Please set GEMINI_API_KEY environment variable."

// DefaultModel is the provider model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Assistant calls the generative AI provider on behalf of the editor.
type Assistant struct {
	client *genai.Client
	model  string
	log    pslog.Logger
}

// New constructs an assistant. An empty API key yields an assistant
// whose calls all report unavailability.
func New(ctx context.Context, apiKey, model string, logger pslog.Logger) (*Assistant, error) {
	if model == "" {
		model = DefaultModel
	}
	a := &Assistant{model: model, log: logger}
	if apiKey == "" {
		if logger != nil {
			logger.Warn("assistant credential missing; AI features disabled")
		}
		return a, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return a, nil
}

// Available reports whether a provider client is configured.
func (a *Assistant) Available() bool {
	return a != nil && a.client != nil
}

// Chat sends a message with optional editor context.
func (a *Assistant) Chat(ctx context.Context, message string, chatCtx schema.ChatContext) schema.AIResponse {
	if !a.Available() {
		return unavailable()
	}
	return a.generate(ctx, buildContextPrompt(message, chatCtx))
}

// Refactor rewrites code according to an instruction.
func (a *Assistant) Refactor(ctx context.Context, code, language, instruction string) schema.AIResponse {
	if !a.Available() {
		return unavailable()
	}
	prompt := fmt.Sprintf(`You are an expert %s developer. Please refactor the following code according to the instruction.

Instruction: %s

Code to refactor:
`+"```%s\n%s\n```"+`

Please provide only the refactored code without additional explanation.`, language, instruction, language, code)
	return a.generate(ctx, prompt)
}

// GenerateTests produces unit tests for the given code.
func (a *Assistant) GenerateTests(ctx context.Context, code, language string) schema.AIResponse {
	if !a.Available() {
		return unavailable()
	}
	prompt := fmt.Sprintf(`You are an expert %s developer. Generate comprehensive unit tests for the following code.

Code to test:
`+"```%s\n%s\n```"+`

Please provide complete unit tests with proper test framework setup and assertions.`, language, language, code)
	return a.generate(ctx, prompt)
}

func (a *Assistant) generate(ctx context.Context, prompt string) schema.AIResponse {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		if a.log != nil {
			a.log.Warn("assistant call failed", "model", a.model, "err", err)
		}
		return schema.AIResponse{
			Success: false,
			Error:   fmt.Sprintf("AI service error: %v", err),
		}
	}
	content := resp.Text()
	if content == "" {
		content = "No response generated"
	}
	return schema.AIResponse{Success: true, Content: content}
}

func unavailable() schema.AIResponse {
	return schema.AIResponse{Success: false, Error: unavailableMessage}
}
