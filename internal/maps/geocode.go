package maps

import (
	"context"
	"fmt"
	"net/url"

	"googlemaps.github.io/maps"

	"voyant/internal/types"
)

// GeocodeService resolves destination names through the Google Maps APIs:
// a coordinate for the itinerary map center and a place photo for the trip
// hero image.
type GeocodeService struct {
	client *maps.Client
	apiKey string
}

// NewGeocodeService creates a GeocodeService with the given API Key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, apiKey: apiKey}, nil
}

// Locate geocodes the destination and returns its coordinate plus a hero
// image URL when the Places API has a photo for it. The photo is optional;
// only geocoding failures are errors.
func (s *GeocodeService) Locate(ctx context.Context, destination string) (types.LatLng, string, error) {
	resp, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: destination})
	if err != nil {
		return types.LatLng{}, "", fmt.Errorf("geocode api error: %w", err)
	}
	if len(resp) == 0 {
		return types.LatLng{}, "", fmt.Errorf("no geocode result for %q", destination)
	}
	loc := resp[0].Geometry.Location
	center := types.LatLng{Lat: loc.Lat, Lng: loc.Lng}

	hero := s.heroImage(ctx, destination)
	return center, hero, nil
}

// heroImage looks up a representative photo for the destination.
// Best effort: any failure returns an empty URL.
func (s *GeocodeService) heroImage(ctx context.Context, destination string) string {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: destination})
	if err != nil || len(resp.Results) == 0 {
		return ""
	}
	for _, result := range resp.Results {
		if len(result.Photos) == 0 {
			continue
		}
		ref := result.Photos[0].PhotoReference
		return fmt.Sprintf(
			"https://maps.googleapis.com/maps/api/place/photo?maxwidth=1200&photoreference=%s&key=%s",
			url.QueryEscape(ref), url.QueryEscape(s.apiKey))
	}
	return ""
}
