package ai

import (
	"strings"
	"testing"
)

func TestBuildItineraryPrompt(t *testing.T) {
	p := buildItineraryPrompt(makeRequest(3))
	for _, want := range []string{"Paris", "2026-09-10", "2026-09-12", "3 days", "food, art", "mid-range"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAlternativesPromptEmbedsCurrent(t *testing.T) {
	current := `{"days":[{"day":1,"title":"Old day"}]}`
	p := buildAlternativesPrompt(makeRequest(1), []byte(current))
	if !strings.Contains(p, current) {
		t.Error("prompt does not embed the current itinerary")
	}

	p = buildAlternativesPrompt(makeRequest(1), nil)
	if !strings.Contains(p, "{}") {
		t.Error("prompt missing the empty-object placeholder")
	}
}

func TestBuildReplacementPrompt(t *testing.T) {
	req := ReplacementRequest{
		GenerationRequest: makeRequest(1),
		Original:          Activity{Title: "Louvre visit", Location: "Rue de Rivoli", Time: "09:00 - 11:30"},
	}
	p := buildReplacementPrompt(req)
	for _, want := range []string{"Louvre visit", "Rue de Rivoli", "09:00 - 11:30", "ONE substitute"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
