package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"voyant/internal/types"
)

// MockProvider is the deterministic, dependency-free Provider variant.
// It is the default when no live credential is configured and the backend
// used by tests. Output depends only on the request contents.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// slot is one canonical time-of-day block of a mock day.
type slot struct {
	label    string
	timeSpan string
	baseCost float64
}

var daySlots = []slot{
	{"morning", "09:00 - 11:30", 12},
	{"lunch", "12:00 - 13:30", 15},
	{"afternoon", "14:00 - 17:30", 14},
	{"dinner", "19:00 - 21:00", 22},
}

// tierMultiplier keeps budget-tier costs strictly below the other tiers.
func tierMultiplier(tier BudgetTier) float64 {
	switch tier {
	case TierBudget:
		return 1.0
	case TierLuxury:
		return 5.0
	default:
		return 2.5
	}
}

func (p *MockProvider) GenerateItinerary(ctx context.Context, req GenerationRequest) ([]byte, error) {
	return p.synthesize(req, false)
}

// GenerateAlternatives regenerates with shifted coordinates, prefixed titles
// and raised costs, so the output is never byte-identical to the primary plan.
func (p *MockProvider) GenerateAlternatives(ctx context.Context, req GenerationRequest, currentJSON []byte) ([]byte, error) {
	return p.synthesize(req, true)
}

func (p *MockProvider) SuggestReplacement(ctx context.Context, req ReplacementRequest) ([]byte, error) {
	if err := validateRequest(req.GenerationRequest); err != nil {
		return nil, err
	}
	if req.Original.Title == "" {
		return nil, fmt.Errorf("%w: replacement without an original activity", ErrGenerationFailed)
	}

	interest := firstInterest(req.Interests)
	base := req.Original.Coordinates
	if base.IsZero() {
		base = baseCoordinate(req.Destination)
	}
	activity := Activity{
		Title:       fmt.Sprintf("%s experience near %s", titleCase(interest), req.Original.Location),
		Description: fmt.Sprintf("A %s-focused alternative to %q, a short walk from the original spot.", interest, req.Original.Title),
		Location:    req.Original.Location,
		Coordinates: jitter(base, 1, 1),
		Time:        req.Original.Time,
		Cost:        round2(req.Original.Cost*tierMultiplier(req.Tier)/tierMultiplier(TierMidRange) + 3),
	}
	return json.Marshal(activity)
}

func (p *MockProvider) synthesize(req GenerationRequest, alternative bool) ([]byte, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	days := req.Days()
	center := baseCoordinate(req.Destination)
	mult := tierMultiplier(req.Tier)

	titlePrefix := ""
	costBump := 0.0
	if alternative {
		titlePrefix = "Hidden gem: "
		costBump = 5
	}

	out := GeneratedItinerary{
		Summary: fmt.Sprintf("A %d-day %s itinerary for %s centered on %s.",
			days, req.Tier, req.Destination, strings.Join(req.Interests, ", ")),
		MapCenter: center,
		Days:      make([]Day, 0, days),
	}
	if alternative {
		out.Summary = "An alternative take: " + out.Summary
	}

	for d := 0; d < days; d++ {
		date := req.StartDate.AddDate(0, 0, d)
		interest := req.Interests[d%len(req.Interests)]
		day := Day{
			Day:   d + 1,
			Date:  date.Format("2006-01-02"),
			Title: fmt.Sprintf("%sDay %d: %s in %s", titlePrefix, d+1, titleCase(interest), req.Destination),
		}
		for si, sl := range daySlots {
			seq := d*len(daySlots) + si
			if alternative {
				seq += 1000 // shift the jitter sequence away from the primary plan
			}
			day.Activities = append(day.Activities, Activity{
				Title:       fmt.Sprintf("%s%s %s in %s", titlePrefix, titleCase(sl.label), activityNoun(sl.label, interest), req.Destination),
				Description: fmt.Sprintf("A %s %s pick for travelers interested in %s.", req.Tier, sl.label, interest),
				Location:    fmt.Sprintf("%s, %s district %d", req.Destination, interest, si+1),
				Coordinates: jitter(center, d, seq),
				Time:        sl.timeSpan,
				Cost:        round2(sl.baseCost*mult + costBump),
			})
		}
		out.Days = append(out.Days, day)
	}

	return json.Marshal(out)
}

func validateRequest(req GenerationRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: missing destination", ErrGenerationFailed)
	}
	if req.Days() < 1 {
		return fmt.Errorf("%w: end date before start date", ErrGenerationFailed)
	}
	if len(req.Interests) == 0 {
		return fmt.Errorf("%w: no interests given", ErrGenerationFailed)
	}
	return nil
}

// baseCoordinate derives a stable pseudo-coordinate from the destination name.
// Keeps the mock plausible on a map without any geocoding dependency.
func baseCoordinate(destination string) types.LatLng {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(destination))))
	sum := h.Sum64()
	lat := -55 + float64(sum%12000)/100        // [-55, 65)
	lng := -180 + float64((sum>>16)%36000)/100 // [-180, 180)
	return types.LatLng{Lat: round4(lat), Lng: round4(lng)}
}

// jitter offsets the base coordinate deterministically per activity so the
// generated pins spread out instead of stacking.
func jitter(base types.LatLng, day, seq int) types.LatLng {
	return types.LatLng{
		Lat: round4(base.Lat + float64((seq*31+day*7)%100-50)/2000),
		Lng: round4(base.Lng + float64((seq*17+day*13)%100-50)/2000),
	}
}

func activityNoun(slotLabel, interest string) string {
	switch slotLabel {
	case "lunch":
		return "lunch stop"
	case "dinner":
		return "dinner spot"
	default:
		return interest + " tour"
	}
}

func firstInterest(interests []string) string {
	if len(interests) == 0 {
		return "local"
	}
	return interests[0]
}

// titleCase upper-cases the first rune only; enough for the single-word
// interest and slot labels the mock composes titles from.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
