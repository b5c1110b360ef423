// README: mock provider tests (determinism, tiers, alternatives divergence).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func makeRequest(days int) GenerationRequest {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return GenerationRequest{
		Destination: "Paris",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days-1),
		Interests:   []string{"food", "art"},
		Tier:        TierMidRange,
		Travelers:   2,
	}
}

func TestMockGenerateItineraryShape(t *testing.T) {
	p := NewMockProvider()
	raw, err := p.GenerateItinerary(context.Background(), makeRequest(3))
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}

	var out GeneratedItinerary
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Summary == "" {
		t.Error("empty summary")
	}
	if out.MapCenter.IsZero() {
		t.Error("zero map center")
	}
	if len(out.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(out.Days))
	}
	for i, d := range out.Days {
		if d.Day != i+1 {
			t.Errorf("day %d numbered %d", i, d.Day)
		}
		if len(d.Activities) < 3 {
			t.Errorf("day %d has %d activities, want at least 3", d.Day, len(d.Activities))
		}
		for _, a := range d.Activities {
			if a.Title == "" || a.Description == "" || a.Time == "" {
				t.Errorf("day %d has an incomplete activity: %+v", d.Day, a)
			}
			if a.Coordinates.IsZero() {
				t.Errorf("day %d activity %q has zero coordinates", d.Day, a.Title)
			}
		}
	}
}

func TestMockDeterministic(t *testing.T) {
	p := NewMockProvider()
	req := makeRequest(2)

	first, err := p.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := p.GenerateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("same request produced different output")
	}
}

func TestMockTierCostsIncrease(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	total := func(tier BudgetTier) float64 {
		req := makeRequest(2)
		req.Tier = tier
		raw, err := p.GenerateItinerary(ctx, req)
		if err != nil {
			t.Fatalf("tier %s: %v", tier, err)
		}
		var out GeneratedItinerary
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("tier %s unmarshal: %v", tier, err)
		}
		var sum float64
		for _, d := range out.Days {
			for _, a := range d.Activities {
				sum += a.Cost
			}
		}
		return sum
	}

	budget, mid, lux := total(TierBudget), total(TierMidRange), total(TierLuxury)
	if !(budget < mid && mid < lux) {
		t.Errorf("tier totals not increasing: budget=%.2f mid=%.2f luxury=%.2f", budget, mid, lux)
	}
}

func TestMockAlternativesDiffer(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()
	req := makeRequest(2)

	primary, err := p.GenerateItinerary(ctx, req)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	alt, err := p.GenerateAlternatives(ctx, req, primary)
	if err != nil {
		t.Fatalf("alternatives: %v", err)
	}
	if bytes.Equal(primary, alt) {
		t.Fatal("alternatives identical to the primary plan")
	}

	var a, b GeneratedItinerary
	if err := json.Unmarshal(primary, &a); err != nil {
		t.Fatalf("unmarshal primary: %v", err)
	}
	if err := json.Unmarshal(alt, &b); err != nil {
		t.Fatalf("unmarshal alternatives: %v", err)
	}
	if len(a.Days) != len(b.Days) {
		t.Fatalf("day counts differ: %d vs %d", len(a.Days), len(b.Days))
	}
	for i := range a.Days {
		if a.Days[i].Title == b.Days[i].Title {
			t.Errorf("day %d title unchanged in alternative plan", i+1)
		}
	}
}

func TestMockValidation(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*GenerationRequest)
	}{
		{"missing destination", func(r *GenerationRequest) { r.Destination = "" }},
		{"inverted dates", func(r *GenerationRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -2) }},
		{"no interests", func(r *GenerationRequest) { r.Interests = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := makeRequest(2)
			tc.mutate(&req)
			if _, err := p.GenerateItinerary(ctx, req); !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
		})
	}
}

func TestMockSuggestReplacement(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	req := ReplacementRequest{
		GenerationRequest: makeRequest(1),
		Original: Activity{
			Title:    "Louvre visit",
			Location: "Paris, art district 1",
			Time:     "09:00 - 11:30",
			Cost:     30,
		},
	}
	raw, err := p.SuggestReplacement(ctx, req)
	if err != nil {
		t.Fatalf("SuggestReplacement: %v", err)
	}

	var a Activity
	if err := json.Unmarshal(raw, &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Title == "" || a.Title == req.Original.Title {
		t.Errorf("replacement title %q should differ from the original", a.Title)
	}
	if a.Location != req.Original.Location {
		t.Errorf("replacement moved away from %q to %q", req.Original.Location, a.Location)
	}
	if a.Time != req.Original.Time {
		t.Errorf("replacement changed time slot from %q to %q", req.Original.Time, a.Time)
	}

	req.Original = Activity{}
	if _, err := p.SuggestReplacement(ctx, req); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed without an original, got %v", err)
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"food", "Food"},
		{"morning", "Morning"},
		{"", ""},
		{"Art", "Art"},
	}
	for _, tc := range cases {
		if got := titleCase(tc.in); got != tc.want {
			t.Errorf("titleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Negative coordinates must round toward the nearest grid point, not
// toward zero; southern/western base coordinates exercise this.
func TestRoundingNegativeValues(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-1.00006, -1.0001},
		{1.00006, 1.0001},
		{-54.99996, -55},
	}
	for _, tc := range cases {
		if got := round4(tc.in); got != tc.want {
			t.Errorf("round4(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if got := round2(-1.006); got != -1.01 {
		t.Errorf("round2(-1.006) = %v, want -1.01", got)
	}
	if got := round2(1.006); got != 1.01 {
		t.Errorf("round2(1.006) = %v, want 1.01", got)
	}
}

func TestTierForBudget(t *testing.T) {
	cases := []struct {
		total float64
		days  int
		want  BudgetTier
	}{
		{0, 3, TierMidRange},
		{150, 3, TierBudget},
		{600, 3, TierMidRange},
		{900, 3, TierLuxury},
		{500, 0, TierMidRange},
	}
	for _, tc := range cases {
		if got := TierForBudget(tc.total, tc.days); got != tc.want {
			t.Errorf("TierForBudget(%.0f, %d) = %s, want %s", tc.total, tc.days, got, tc.want)
		}
	}
}
