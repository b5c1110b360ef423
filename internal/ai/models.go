package ai

import (
	"time"

	"voyant/internal/types"
)

// BudgetTier buckets a trip budget into the coarse bands the providers
// understand. Numeric budgets from the API are converted via TierForBudget.
type BudgetTier string

const (
	TierBudget   BudgetTier = "budget"
	TierMidRange BudgetTier = "mid-range"
	TierLuxury   BudgetTier = "luxury"
)

// TierForBudget maps a total numeric budget to a tier based on spend per day.
// A zero or negative budget means the caller didn't state one; default to mid-range.
func TierForBudget(total float64, days int) BudgetTier {
	if total <= 0 || days <= 0 {
		return TierMidRange
	}
	perDay := total / float64(days)
	switch {
	case perDay < 100:
		return TierBudget
	case perDay < 250:
		return TierMidRange
	default:
		return TierLuxury
	}
}

// GenerationRequest describes one itinerary-generation call.
// It is built per API call and never persisted.
type GenerationRequest struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
	Budget      float64 // total for the trip; 0 = unspecified
	Tier        BudgetTier
	Travelers   int
}

// Days returns the inclusive day count of the requested range.
// A non-positive result means the range is inverted.
func (r GenerationRequest) Days() int {
	start := r.StartDate.Truncate(24 * time.Hour)
	end := r.EndDate.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

// ReplacementRequest asks a provider for one substitute activity near the
// original's location and theme.
type ReplacementRequest struct {
	GenerationRequest
	Original Activity
}

// Activity is a single generated suggestion. It has no identity until the
// caller accepts it and writes it into a trip.
type Activity struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Coordinates types.LatLng `json:"coordinates"`
	// Time is a free-text "start - end" label authored by the provider,
	// not a parsed time value. Activities stay in insertion order.
	Time     string  `json:"time"`
	Cost     float64 `json:"cost"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Day is one calendar day of a generated plan.
type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// GeneratedItinerary is the full provider contract: providers serialize it
// to JSON, the planner service parses it back.
type GeneratedItinerary struct {
	Summary   string       `json:"summary"`
	MapCenter types.LatLng `json:"mapCenter"`
	Days      []Day        `json:"days"`
}
