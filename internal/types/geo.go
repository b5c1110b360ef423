// README: Common geographic value object used across modules.
package types

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the coordinate is the (0,0) null island default.
func (p LatLng) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}
