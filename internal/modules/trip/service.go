// README: Trip service implements ownership/role checks over the store.
package trip

import (
	"context"
	"errors"
	"strings"
	"time"

	"voyant/internal/types"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrForbidden  = errors.New("caller may not modify this trip")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("collaborator already added")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	OwnerUID    string
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
}

// UpdateCommand is a typed partial update; nil fields are left unchanged.
type UpdateCommand struct {
	TripID      types.ID
	ActorUID    string
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Status      *Status
}

type SaveItineraryCommand struct {
	TripID    types.ID
	ActorUID  string
	Summary   string
	HeroImage string
	MapCenter types.LatLng
	Days      []Day
}

type AddCollaboratorCommand struct {
	TripID   types.ID
	ActorUID string
	UID      string
	Role     Role
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.OwnerUID == "" || strings.TrimSpace(cmd.Destination) == "" {
		return nil, ErrBadRequest
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return nil, ErrBadRequest
	}
	if cmd.Title == "" {
		cmd.Title = "Trip to " + cmd.Destination
	}
	now := time.Now()
	t := &Trip{
		ID:          types.NewID(),
		OwnerUID:    cmd.OwnerUID,
		Title:       cmd.Title,
		Destination: cmd.Destination,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		Budget:      cmd.Budget,
		Status:      StatusPlanning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTrip(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the trip with its itinerary when the caller may view it.
func (s *Service) Get(ctx context.Context, tripID types.ID, actorUID string) (*Trip, []Day, error) {
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	if !s.canView(ctx, t, actorUID) {
		return nil, nil, ErrForbidden
	}
	days, err := s.store.GetItinerary(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	return t, days, nil
}

func (s *Service) ListByUser(ctx context.Context, uid string) ([]*Trip, error) {
	return s.store.ListTripsByUser(ctx, uid)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (*Trip, error) {
	t, err := s.store.GetTrip(ctx, cmd.TripID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(ctx, t, cmd.ActorUID) {
		return nil, ErrForbidden
	}

	if cmd.Title != nil {
		t.Title = *cmd.Title
	}
	if cmd.Destination != nil {
		if strings.TrimSpace(*cmd.Destination) == "" {
			return nil, ErrBadRequest
		}
		t.Destination = *cmd.Destination
	}
	if cmd.StartDate != nil {
		t.StartDate = *cmd.StartDate
	}
	if cmd.EndDate != nil {
		t.EndDate = *cmd.EndDate
	}
	if t.EndDate.Before(t.StartDate) {
		return nil, ErrBadRequest
	}
	if cmd.Budget != nil {
		if *cmd.Budget < 0 {
			return nil, ErrBadRequest
		}
		t.Budget = *cmd.Budget
	}
	if cmd.Status != nil {
		if !ValidStatus(*cmd.Status) {
			return nil, ErrBadRequest
		}
		t.Status = *cmd.Status
	}
	t.UpdatedAt = time.Now()

	if err := s.store.UpdateTrip(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete is owner-only.
func (s *Service) Delete(ctx context.Context, tripID types.ID, actorUID string) error {
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if t.OwnerUID != actorUID {
		return ErrForbidden
	}
	return s.store.DeleteTrip(ctx, tripID)
}

// SaveItinerary replaces the trip's days with an accepted generated plan.
// Day and activity IDs are assigned here; incoming ones are ignored.
func (s *Service) SaveItinerary(ctx context.Context, cmd SaveItineraryCommand) error {
	t, err := s.store.GetTrip(ctx, cmd.TripID)
	if err != nil {
		return err
	}
	if !s.canEdit(ctx, t, cmd.ActorUID) {
		return ErrForbidden
	}

	days := make([]Day, len(cmd.Days))
	for i, d := range cmd.Days {
		d.ID = types.NewID()
		d.TripID = cmd.TripID
		d.DayNumber = i + 1
		for j := range d.Activities {
			d.Activities[j].ID = types.NewID()
			d.Activities[j].DayID = d.ID
			d.Activities[j].Position = j
		}
		days[i] = d
	}
	if err := s.store.ReplaceItinerary(ctx, cmd.TripID, days); err != nil {
		return err
	}

	t.Summary = cmd.Summary
	if cmd.HeroImage != "" {
		t.HeroImage = cmd.HeroImage
	}
	if !cmd.MapCenter.IsZero() {
		t.MapCenter = cmd.MapCenter
	}
	t.UpdatedAt = time.Now()
	return s.store.UpdateTrip(ctx, t)
}

func (s *Service) AddActivity(ctx context.Context, dayID types.ID, actorUID string, a Activity) (*Activity, error) {
	day, err := s.store.GetDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTrip(ctx, day.TripID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(ctx, t, actorUID) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(a.Title) == "" || a.Cost < 0 {
		return nil, ErrBadRequest
	}
	a.ID = types.NewID()
	a.DayID = dayID
	if err := s.store.AddActivity(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ActivityUpdate is a typed partial update for one activity.
type ActivityUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Coordinates *types.LatLng
	TimeLabel   *string
	Cost        *float64
	ImageURL    *string
	Position    *int
}

func (s *Service) UpdateActivity(ctx context.Context, id types.ID, actorUID string, upd ActivityUpdate) (*Activity, error) {
	a, tripID, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !s.canEdit(ctx, t, actorUID) {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, ErrBadRequest
		}
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Location != nil {
		a.Location = *upd.Location
	}
	if upd.Coordinates != nil {
		a.Coordinates = *upd.Coordinates
	}
	if upd.TimeLabel != nil {
		a.TimeLabel = *upd.TimeLabel
	}
	if upd.Cost != nil {
		if *upd.Cost < 0 {
			return nil, ErrBadRequest
		}
		a.Cost = *upd.Cost
	}
	if upd.ImageURL != nil {
		a.ImageURL = *upd.ImageURL
	}
	if upd.Position != nil {
		a.Position = *upd.Position
	}

	if err := s.store.UpdateActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteActivity(ctx context.Context, id types.ID, actorUID string) error {
	_, tripID, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return err
	}
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if !s.canEdit(ctx, t, actorUID) {
		return ErrForbidden
	}
	return s.store.DeleteActivity(ctx, id)
}

// AddCollaborator is owner-only.
func (s *Service) AddCollaborator(ctx context.Context, cmd AddCollaboratorCommand) error {
	t, err := s.store.GetTrip(ctx, cmd.TripID)
	if err != nil {
		return err
	}
	if t.OwnerUID != cmd.ActorUID {
		return ErrForbidden
	}
	if cmd.UID == "" || cmd.UID == t.OwnerUID {
		return ErrBadRequest
	}
	if cmd.Role != RoleEditor && cmd.Role != RoleViewer {
		return ErrBadRequest
	}
	return s.store.AddCollaborator(ctx, &Collaborator{
		TripID:    cmd.TripID,
		UID:       cmd.UID,
		Role:      cmd.Role,
		InvitedBy: cmd.ActorUID,
		CreatedAt: time.Now(),
	})
}

func (s *Service) RemoveCollaborator(ctx context.Context, tripID types.ID, actorUID, uid string) error {
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if t.OwnerUID != actorUID {
		return ErrForbidden
	}
	return s.store.RemoveCollaborator(ctx, tripID, uid)
}

func (s *Service) ListCollaborators(ctx context.Context, tripID types.ID, actorUID string) ([]Collaborator, error) {
	t, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !s.canView(ctx, t, actorUID) {
		return nil, ErrForbidden
	}
	return s.store.ListCollaborators(ctx, tripID)
}

func (s *Service) canEdit(ctx context.Context, t *Trip, uid string) bool {
	if t.OwnerUID == uid {
		return true
	}
	role, err := s.store.GetRole(ctx, t.ID, uid)
	return err == nil && role == RoleEditor
}

func (s *Service) canView(ctx context.Context, t *Trip, uid string) bool {
	if t.OwnerUID == uid {
		return true
	}
	_, err := s.store.GetRole(ctx, t.ID, uid)
	return err == nil
}
