package ai

import (
	"encoding/json"
	"fmt"
)

// validateItineraryJSON checks that raw parses as JSON and carries the
// required itinerary shape: summary, mapCenter, and an array-typed days.
// It returns the raw bytes unchanged so providers can hand them through.
func validateItineraryJSON(raw []byte) ([]byte, error) {
	var probe struct {
		Summary   *string          `json:"summary"`
		MapCenter *json.RawMessage `json:"mapCenter"`
		Days      *json.RawMessage `json:"days"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if probe.Summary == nil {
		return nil, fmt.Errorf("%w: missing summary", ErrInvalidResponse)
	}
	if probe.MapCenter == nil {
		return nil, fmt.Errorf("%w: missing mapCenter", ErrInvalidResponse)
	}
	if probe.Days == nil {
		return nil, fmt.Errorf("%w: missing days", ErrInvalidResponse)
	}
	var days []json.RawMessage
	if err := json.Unmarshal(*probe.Days, &days); err != nil {
		return nil, fmt.Errorf("%w: days is not an array", ErrInvalidResponse)
	}
	return raw, nil
}

// validateActivityJSON checks the single-activity shape: title, description
// and coordinates must be present.
func validateActivityJSON(raw []byte) ([]byte, error) {
	var probe struct {
		Title       *string          `json:"title"`
		Description *string          `json:"description"`
		Coordinates *json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if probe.Title == nil || *probe.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidResponse)
	}
	if probe.Description == nil {
		return nil, fmt.Errorf("%w: missing description", ErrInvalidResponse)
	}
	if probe.Coordinates == nil {
		return nil, fmt.Errorf("%w: missing coordinates", ErrInvalidResponse)
	}
	return raw, nil
}
