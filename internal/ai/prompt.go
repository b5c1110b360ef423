package ai

import (
	"fmt"
	"strings"
)

// Prompt builders shared by the live providers. Both send the same system
// instruction; only transport and sampling settings differ per backend.

const itinerarySchema = `Output JSON Schema (respond with this object ONLY, no markdown):
{
  "summary": "string (2-3 sentence overview of the trip)",
  "mapCenter": {"lat": number, "lng": number},
  "days": [
    {
      "day": integer (1-based),
      "date": "YYYY-MM-DD",
      "title": "string (theme of the day)",
      "activities": [
        {
          "title": "string",
          "description": "string",
          "location": "string (place name)",
          "coordinates": {"lat": number, "lng": number},
          "time": "string (e.g. \"09:00 - 11:30\")",
          "cost": number (estimated cost per person, non-negative),
          "imageUrl": "string (optional, may be empty)"
        }
      ]
    }
  ]
}`

const activitySchema = `Output JSON Schema (respond with this object ONLY, no markdown):
{
  "title": "string",
  "description": "string",
  "location": "string (place name)",
  "coordinates": {"lat": number, "lng": number},
  "time": "string (e.g. \"09:00 - 11:30\")",
  "cost": number (estimated cost per person, non-negative),
  "imageUrl": "string (optional, may be empty)"
}`

func buildItineraryPrompt(req GenerationRequest) string {
	return fmt.Sprintf(`Role: You are a travel planner generating a day-by-day itinerary.

Trip:
- Destination: %s
- Dates: %s to %s (%d days, every day must be covered)
- Travelers: %d
- Budget tier: %s
- Interests: %s

RULES:
1. Produce exactly %d days, numbered from 1, with the correct calendar date on each.
2. Each day needs at least 3 activities: a morning activity, a lunch stop, and an
   afternoon or evening activity. Add a dinner suggestion where it fits.
3. Keep estimated costs consistent with the %s budget tier.
4. Every activity needs real coordinates near the destination.
5. List activities in chronological order; the caller does not re-sort them.

%s`,
		req.Destination,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), req.Days(),
		req.Travelers,
		req.Tier,
		strings.Join(req.Interests, ", "),
		req.Days(),
		req.Tier,
		itinerarySchema)
}

func buildAlternativesPrompt(req GenerationRequest, currentJSON []byte) string {
	current := "{}"
	if len(currentJSON) > 0 {
		current = string(currentJSON)
	}
	return fmt.Sprintf(`%s

The traveler already has the itinerary below and wants a different take.
Avoid repeating its activity titles and locations. Prefer lesser-known spots,
and it is fine to lean toward more distinctive (and somewhat pricier) picks.

Current itinerary:
%s`, buildItineraryPrompt(req), current)
}

func buildReplacementPrompt(req ReplacementRequest) string {
	return fmt.Sprintf(`Role: You are a travel planner suggesting one replacement activity.

The traveler is in %s (budget tier: %s, interests: %s) and wants to swap out:
- Title: %s
- Location: %s (lat %.4f, lng %.4f)
- Time slot: %s

Suggest exactly ONE substitute activity close to the original's location and
matching the same interests and time slot. Do not repeat the original activity.

%s`,
		req.Destination, req.Tier, strings.Join(req.Interests, ", "),
		req.Original.Title,
		req.Original.Location, req.Original.Coordinates.Lat, req.Original.Coordinates.Lng,
		req.Original.Time,
		activitySchema)
}
