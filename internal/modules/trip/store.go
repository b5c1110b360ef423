// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyant/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTrip(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (
			id, owner_uid, title, destination, start_date, end_date,
			budget, status, summary, hero_image, center_lat, center_lng,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		string(t.ID), t.OwnerUID, t.Title, t.Destination, t.StartDate, t.EndDate,
		t.Budget, string(t.Status), t.Summary, t.HeroImage, t.MapCenter.Lat, t.MapCenter.Lng,
		t.CreatedAt, t.UpdatedAt,
	)
	return err
}

const tripColumns = `
	id, owner_uid, title, destination, start_date, end_date,
	budget, status, summary, hero_image, center_lat, center_lng,
	created_at, updated_at`

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	err := row.Scan(
		&t.ID, &t.OwnerUID, &t.Title, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Budget, &t.Status, &t.Summary, &t.HeroImage, &t.MapCenter.Lat, &t.MapCenter.Lng,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) GetTrip(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT`+tripColumns+` FROM trips WHERE id = $1`, string(id))
	return scanTrip(row)
}

// ListTripsByUser returns trips the user owns or collaborates on,
// most recently updated first.
func (s *Store) ListTripsByUser(ctx context.Context, uid string) ([]*Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+tripColumns+`
		FROM trips
		WHERE owner_uid = $1
		   OR id IN (SELECT trip_id FROM trip_collaborators WHERE uid = $1)
		ORDER BY updated_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (s *Store) UpdateTrip(ctx context.Context, t *Trip) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips SET
			title = $1, destination = $2, start_date = $3, end_date = $4,
			budget = $5, status = $6, summary = $7, hero_image = $8,
			center_lat = $9, center_lng = $10, updated_at = $11
		WHERE id = $12`,
		t.Title, t.Destination, t.StartDate, t.EndDate,
		t.Budget, string(t.Status), t.Summary, t.HeroImage,
		t.MapCenter.Lat, t.MapCenter.Lng, t.UpdatedAt,
		string(t.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrip removes the trip and everything hanging off it.
func (s *Store) DeleteTrip(ctx context.Context, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM trip_activities
		WHERE day_id IN (SELECT id FROM trip_days WHERE trip_id = $1)`, string(id)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM trip_days WHERE trip_id = $1`, string(id)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM trip_collaborators WHERE trip_id = $1`, string(id)); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM trips WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// ReplaceItinerary swaps the trip's entire day/activity set in one
// transaction. Days must arrive already ordered.
func (s *Store) ReplaceItinerary(ctx context.Context, tripID types.ID, days []Day) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM trip_activities
		WHERE day_id IN (SELECT id FROM trip_days WHERE trip_id = $1)`, string(tripID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM trip_days WHERE trip_id = $1`, string(tripID)); err != nil {
		return err
	}

	for _, d := range days {
		if _, err := tx.Exec(ctx, `
			INSERT INTO trip_days (id, trip_id, day_number, date, title)
			VALUES ($1, $2, $3, $4, $5)`,
			string(d.ID), string(tripID), d.DayNumber, d.Date, d.Title); err != nil {
			return err
		}
		for _, a := range d.Activities {
			if err := insertActivity(ctx, tx, &a); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE trips SET updated_at = $1 WHERE id = $2`,
		time.Now(), string(tripID)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertActivity(ctx context.Context, tx pgx.Tx, a *Activity) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO trip_activities (
			id, day_id, position, title, description, location,
			lat, lng, time_label, cost, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(a.ID), string(a.DayID), a.Position, a.Title, a.Description, a.Location,
		a.Coordinates.Lat, a.Coordinates.Lng, a.TimeLabel, a.Cost, a.ImageURL,
	)
	return err
}

// GetItinerary loads all days and activities of a trip in display order.
func (s *Store) GetItinerary(ctx context.Context, tripID types.ID) ([]Day, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, day_number, date, title
		FROM trip_days
		WHERE trip_id = $1
		ORDER BY day_number`, string(tripID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []Day
	byID := make(map[types.ID]int)
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Date, &d.Title); err != nil {
			return nil, err
		}
		byID[d.ID] = len(days)
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	arows, err := s.db.Query(ctx, `
		SELECT a.id, a.day_id, a.position, a.title, a.description, a.location,
		       a.lat, a.lng, a.time_label, a.cost, a.image_url
		FROM trip_activities a
		JOIN trip_days d ON d.id = a.day_id
		WHERE d.trip_id = $1
		ORDER BY d.day_number, a.position`, string(tripID))
	if err != nil {
		return nil, err
	}
	defer arows.Close()

	for arows.Next() {
		var a Activity
		if err := arows.Scan(&a.ID, &a.DayID, &a.Position, &a.Title, &a.Description, &a.Location,
			&a.Coordinates.Lat, &a.Coordinates.Lng, &a.TimeLabel, &a.Cost, &a.ImageURL); err != nil {
			return nil, err
		}
		if idx, ok := byID[a.DayID]; ok {
			days[idx].Activities = append(days[idx].Activities, a)
		}
	}
	return days, arows.Err()
}

// GetDay returns the day row (without activities) so callers can check
// which trip an activity insert targets.
func (s *Store) GetDay(ctx context.Context, dayID types.ID) (*Day, error) {
	var d Day
	err := s.db.QueryRow(ctx, `
		SELECT id, trip_id, day_number, date, title
		FROM trip_days WHERE id = $1`, string(dayID)).
		Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Date, &d.Title)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) AddActivity(ctx context.Context, a *Activity) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := insertActivity(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetActivity(ctx context.Context, id types.ID) (*Activity, types.ID, error) {
	var a Activity
	var tripID string
	err := s.db.QueryRow(ctx, `
		SELECT a.id, a.day_id, a.position, a.title, a.description, a.location,
		       a.lat, a.lng, a.time_label, a.cost, a.image_url, d.trip_id
		FROM trip_activities a
		JOIN trip_days d ON d.id = a.day_id
		WHERE a.id = $1`, string(id)).
		Scan(&a.ID, &a.DayID, &a.Position, &a.Title, &a.Description, &a.Location,
			&a.Coordinates.Lat, &a.Coordinates.Lng, &a.TimeLabel, &a.Cost, &a.ImageURL, &tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &a, types.ID(tripID), nil
}

func (s *Store) UpdateActivity(ctx context.Context, a *Activity) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trip_activities SET
			position = $1, title = $2, description = $3, location = $4,
			lat = $5, lng = $6, time_label = $7, cost = $8, image_url = $9
		WHERE id = $10`,
		a.Position, a.Title, a.Description, a.Location,
		a.Coordinates.Lat, a.Coordinates.Lng, a.TimeLabel, a.Cost, a.ImageURL,
		string(a.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteActivity(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trip_activities WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddCollaborator(ctx context.Context, c *Collaborator) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO trip_collaborators (trip_id, uid, role, invited_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trip_id, uid) DO NOTHING`,
		string(c.TripID), c.UID, string(c.Role), c.InvitedBy, c.CreatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (s *Store) RemoveCollaborator(ctx context.Context, tripID types.ID, uid string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM trip_collaborators WHERE trip_id = $1 AND uid = $2`,
		string(tripID), uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListCollaborators(ctx context.Context, tripID types.ID) ([]Collaborator, error) {
	rows, err := s.db.Query(ctx, `
		SELECT trip_id, uid, role, invited_by, created_at
		FROM trip_collaborators
		WHERE trip_id = $1
		ORDER BY created_at`, string(tripID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Collaborator
	for rows.Next() {
		var c Collaborator
		if err := rows.Scan(&c.TripID, &c.UID, &c.Role, &c.InvitedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetRole returns the collaborator role of uid on the trip, or ErrNotFound
// when uid is not a collaborator.
func (s *Store) GetRole(ctx context.Context, tripID types.ID, uid string) (Role, error) {
	var role string
	err := s.db.QueryRow(ctx, `
		SELECT role FROM trip_collaborators WHERE trip_id = $1 AND uid = $2`,
		string(tripID), uid).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Role(role), nil
}
