package ai

import (
	"context"
	"errors"
)

var (
	// ErrGenerationFailed means the provider could not produce a result:
	// invalid request, upstream error, or an empty response.
	ErrGenerationFailed = errors.New("itinerary generation failed")

	// ErrInvalidResponse means the provider returned data that is not
	// parseable JSON or lacks the required shape.
	ErrInvalidResponse = errors.New("invalid provider response format")
)

// Provider is the contract for itinerary generation backends.
// Implementations return validated raw JSON rather than deserialized
// structs; callers downstream re-parse it into the domain shape.
type Provider interface {
	// GenerateItinerary produces a full day-by-day plan covering every day
	// in the requested range, serialized as a GeneratedItinerary JSON object.
	GenerateItinerary(ctx context.Context, req GenerationRequest) ([]byte, error)

	// GenerateAlternatives produces a second itinerary for the same request,
	// biased away from the activities in currentJSON. Distinctness is a
	// quality goal, not a checked invariant.
	GenerateAlternatives(ctx context.Context, req GenerationRequest, currentJSON []byte) ([]byte, error)

	// SuggestReplacement produces one substitute activity near the original's
	// location and theme, serialized as an Activity JSON object.
	SuggestReplacement(ctx context.Context, req ReplacementRequest) ([]byte, error)
}
