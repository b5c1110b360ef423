// README: Weather snapshot model and errors.
package weather

import (
	"errors"
	"time"
)

// ErrNoSnapshot is returned when no cached forecast exists for a destination.
var ErrNoSnapshot = errors.New("no weather snapshot for destination")

// Snapshot is one cached forecast for a destination.
type Snapshot struct {
	Destination string    `json:"destination"`
	TempC       float64   `json:"tempC"`
	Condition   string    `json:"condition"`
	PrecipPct   int       `json:"precipPct"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
