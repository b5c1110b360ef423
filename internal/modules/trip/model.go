// README: Trip aggregate: trips, itinerary days, activities, collaborators.
package trip

import (
	"time"

	"voyant/internal/types"
)

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanning, StatusUpcoming, StatusCompleted:
		return true
	}
	return false
}

type Trip struct {
	ID          types.ID
	OwnerUID    string
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	Status      Status
	Summary     string
	HeroImage   string
	MapCenter   types.LatLng
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Day is one persisted itinerary day. Activities are ordered by Position,
// which reflects the order the plan was authored in.
type Day struct {
	ID         types.ID
	TripID     types.ID
	DayNumber  int // 1-based
	Date       time.Time
	Title      string
	Activities []Activity
}

type Activity struct {
	ID          types.ID
	DayID       types.ID
	Position    int
	Title       string
	Description string
	Location    string
	Coordinates types.LatLng
	TimeLabel   string // free-text "start - end", never parsed
	Cost        float64
	ImageURL    string
}

type Role string

const (
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type Collaborator struct {
	TripID    types.ID
	UID       string
	Role      Role
	InvitedBy string
	CreatedAt time.Time
}
