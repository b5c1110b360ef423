package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

const (
	// openAITemperature is used for primary generation; alternatives run
	// hotter so successive plans actually diverge.
	openAITemperature    = 0.7
	openAIAltTemperature = 1.0
)

// OpenAIProvider implements Provider over the OpenAI chat-completions API.
// The 30s client timeout guards against stalled connections while context
// cancellation is still honoured via NewRequestWithContext.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewOpenAIProvider creates a provider using the given bearer credential.
// model defaults to gpt-4o-mini when empty.
func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultOpenAIEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) GenerateItinerary(ctx context.Context, req GenerationRequest) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, buildItineraryPrompt(req), openAITemperature)
	if err != nil {
		return nil, err
	}
	return validateItineraryJSON(raw)
}

func (p *OpenAIProvider) GenerateAlternatives(ctx context.Context, req GenerationRequest, currentJSON []byte) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, buildAlternativesPrompt(req, currentJSON), openAIAltTemperature)
	if err != nil {
		return nil, err
	}
	return validateItineraryJSON(raw)
}

func (p *OpenAIProvider) SuggestReplacement(ctx context.Context, req ReplacementRequest) ([]byte, error) {
	if err := validateRequest(req.GenerationRequest); err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, buildReplacementPrompt(req), openAITemperature)
	if err != nil {
		return nil, err
	}
	return validateActivityJSON(raw)
}

// complete sends one system/user message pair and returns the completion text.
func (p *OpenAIProvider) complete(ctx context.Context, prompt string, temperature float64) ([]byte, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a travel-itinerary generator. Respond with a single JSON object and nothing else."},
			{Role: "user", Content: prompt},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openai request: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: openai read response: %v", ErrGenerationFailed, err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("%w: openai response not JSON: %v", ErrInvalidResponse, err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("%w: openai api error: %s", ErrGenerationFailed, cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", ErrGenerationFailed)
	}
	content := strings.TrimSpace(cr.Choices[0].Message.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: openai returned empty content", ErrGenerationFailed)
	}
	return []byte(cleanJSONString(content)), nil
}
