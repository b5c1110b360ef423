package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	// model handles primary generation and replacements; altModel runs with
	// a higher temperature so alternative plans diverge from the original.
	model    *genai.GenerativeModel
	altModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from process configuration.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		// Gemini 2.0 Flash for low latency and cost efficiency.
		modelName = "gemini-2.0-flash"
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json" // force JSON for structured parsing
	model.SetTemperature(0.7)

	altModel := client.GenerativeModel(modelName)
	altModel.ResponseMIMEType = "application/json"
	altModel.SetTemperature(1.1)

	return &GeminiProvider{
		client:   client,
		model:    model,
		altModel: altModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) GenerateItinerary(ctx context.Context, req GenerationRequest) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, p.model, buildItineraryPrompt(req))
	if err != nil {
		return nil, err
	}
	return validateItineraryJSON(raw)
}

func (p *GeminiProvider) GenerateAlternatives(ctx context.Context, req GenerationRequest, currentJSON []byte) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, p.altModel, buildAlternativesPrompt(req, currentJSON))
	if err != nil {
		return nil, err
	}
	return validateItineraryJSON(raw)
}

func (p *GeminiProvider) SuggestReplacement(ctx context.Context, req ReplacementRequest) ([]byte, error) {
	if err := validateRequest(req.GenerationRequest); err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, p.model, buildReplacementPrompt(req))
	if err != nil {
		return nil, err
	}
	return validateActivityJSON(raw)
}

func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) ([]byte, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generation: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no response candidates from Gemini", ErrGenerationFailed)
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	if responseText.Len() == 0 {
		return nil, fmt.Errorf("%w: gemini returned empty text parts", ErrGenerationFailed)
	}

	// JSON mode should prevent markdown fences, but clean up anyway.
	return []byte(cleanJSONString(responseText.String())), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
