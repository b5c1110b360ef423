package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"voyant/internal/ai"
	"voyant/internal/types"
)

// defaultInterests keeps provider calls valid when the caller sends none.
var defaultInterests = []string{"sightseeing"}

// Geocoder resolves a destination name to a map center and a hero image URL.
// A nil Geocoder disables enrichment; generation still works.
type Geocoder interface {
	Locate(ctx context.Context, destination string) (types.LatLng, string, error)
}

// Planner orchestrates the generation provider: it invokes the configured
// variant, parses the serialized result, and maps it into the domain
// day/activity shape. Provider failures propagate to the caller; no retries.
type Planner struct {
	provider ai.Provider
	geo      Geocoder
	log      *zap.Logger
}

func NewPlanner(provider ai.Provider, geo Geocoder, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{provider: provider, geo: geo, log: log}
}

// Plan is the full payload returned by the ai-plan endpoint.
type Plan struct {
	Destination string       `json:"destination"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	TotalBudget float64      `json:"totalBudget"`
	BudgetUsed  float64      `json:"budgetUsed"`
	Summary     string       `json:"summary"`
	Days        []ai.Day     `json:"days"`
	HeroImage   string       `json:"heroImage"`
	MapCenter   types.LatLng `json:"mapCenter"`
}

// normalize fills derived fields the providers require: a budget tier and a
// non-empty interest list.
func normalize(req ai.GenerationRequest) ai.GenerationRequest {
	if len(req.Interests) == 0 {
		req.Interests = defaultInterests
	}
	if req.Tier == "" {
		req.Tier = ai.TierForBudget(req.Budget, req.Days())
	}
	return req
}

// GenerateItinerary invokes the provider and returns the parsed day sequence.
// A response without a days field yields an empty slice, not an error.
func (p *Planner) GenerateItinerary(ctx context.Context, req ai.GenerationRequest) ([]ai.Day, error) {
	it, err := p.generate(ctx, normalize(req))
	if err != nil {
		return nil, err
	}
	return it.Days, nil
}

// GenerateAlternativeItinerary serializes the current days (an empty object
// when nil) and invokes the provider's alternative-generation path.
func (p *Planner) GenerateAlternativeItinerary(ctx context.Context, req ai.GenerationRequest, currentDays []ai.Day) ([]ai.Day, error) {
	req = normalize(req)

	currentJSON := []byte("{}")
	if len(currentDays) > 0 {
		b, err := json.Marshal(map[string]any{"days": currentDays})
		if err != nil {
			return nil, fmt.Errorf("marshal current itinerary: %w", err)
		}
		currentJSON = b
	}

	raw, err := p.provider.GenerateAlternatives(ctx, req, currentJSON)
	if err != nil {
		p.log.Warn("alternative generation failed", zap.String("destination", req.Destination), zap.Error(err))
		return nil, err
	}
	it, err := parseItinerary(raw)
	if err != nil {
		return nil, err
	}
	return it.Days, nil
}

// SuggestReplacement invokes the provider and parses a single activity.
func (p *Planner) SuggestReplacement(ctx context.Context, req ai.ReplacementRequest) (*ai.Activity, error) {
	req.GenerationRequest = normalize(req.GenerationRequest)

	raw, err := p.provider.SuggestReplacement(ctx, req)
	if err != nil {
		p.log.Warn("replacement suggestion failed", zap.String("destination", req.Destination), zap.Error(err))
		return nil, err
	}
	var activity ai.Activity
	if err := json.Unmarshal(raw, &activity); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidResponse, err)
	}
	return &activity, nil
}

// BuildPlan generates an itinerary and assembles the endpoint payload:
// budget totals plus map-center / hero-image enrichment.
func (p *Planner) BuildPlan(ctx context.Context, req ai.GenerationRequest) (*Plan, error) {
	req = normalize(req)

	it, err := p.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Destination: req.Destination,
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		TotalBudget: req.Budget,
		BudgetUsed:  sumCosts(it.Days),
		Summary:     it.Summary,
		Days:        it.Days,
		MapCenter:   it.MapCenter,
	}
	if plan.Days == nil {
		plan.Days = []ai.Day{}
	}

	// Enrichment is best-effort: a geocoding failure never fails the plan.
	if p.geo != nil {
		center, hero, err := p.geo.Locate(ctx, req.Destination)
		if err != nil {
			p.log.Warn("geocode enrichment failed", zap.String("destination", req.Destination), zap.Error(err))
		} else {
			if plan.MapCenter.IsZero() {
				plan.MapCenter = center
			}
			plan.HeroImage = hero
		}
	}

	return plan, nil
}

func (p *Planner) generate(ctx context.Context, req ai.GenerationRequest) (*ai.GeneratedItinerary, error) {
	raw, err := p.provider.GenerateItinerary(ctx, req)
	if err != nil {
		p.log.Warn("itinerary generation failed", zap.String("destination", req.Destination), zap.Error(err))
		return nil, err
	}
	return parseItinerary(raw)
}

func parseItinerary(raw []byte) (*ai.GeneratedItinerary, error) {
	var it ai.GeneratedItinerary
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrInvalidResponse, err)
	}
	if it.Days == nil {
		it.Days = []ai.Day{}
	}
	return &it, nil
}

func sumCosts(days []ai.Day) float64 {
	var total float64
	for _, d := range days {
		for _, a := range d.Activities {
			total += a.Cost
		}
	}
	return total
}
