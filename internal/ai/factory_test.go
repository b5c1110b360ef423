// README: provider selection tests (mock fallback without credentials).
package ai

import (
	"context"
	"testing"
)

func TestNewProviderNoCredential(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Backend: "openai"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("expected MockProvider without a credential, got %T", p)
	}

	// The mock must be able to generate entirely offline.
	raw, err := p.GenerateItinerary(context.Background(), makeRequest(2))
	if err != nil {
		t.Fatalf("mock GenerateItinerary: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("mock returned empty output")
	}
}

func TestNewProviderForceMock(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Backend: "openai", APIKey: "key", ForceMock: true})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Fatalf("expected MockProvider when forced, got %T", p)
	}
}

func TestNewProviderOpenAI(t *testing.T) {
	p, err := NewProvider(context.Background(), ProviderConfig{Backend: "openai", APIKey: "key"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Fatalf("expected OpenAIProvider, got %T", p)
	}
}
