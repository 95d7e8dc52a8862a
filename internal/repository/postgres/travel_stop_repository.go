package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type travelStopRepository struct {
	db *sqlx.DB
}

func NewTravelStopRepository(db *sqlx.DB) repository.TravelStopRepository {
	return &travelStopRepository{db: db}
}

func (r *travelStopRepository) Create(ctx context.Context, stop *domain.TravelStop) error {
	query := `
		INSERT INTO travel_stops (id, profile_id, location_name, lat, lon, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		stop.ID, stop.ProfileID, stop.LocationName,
		stop.Lat, stop.Lon, stop.StartDate, stop.EndDate,
	).Scan(&stop.CreatedAt)
}

func (r *travelStopRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TravelStop, error) {
	var stop domain.TravelStop
	query := `SELECT * FROM travel_stops WHERE id = $1`
	err := r.db.GetContext(ctx, &stop, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTravelStopNotFound
		}
		return nil, err
	}
	return &stop, nil
}

func (r *travelStopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM travel_stops WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTravelStopNotFound
	}
	return nil
}

func (r *travelStopRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.TravelStop, error) {
	var stops []*domain.TravelStop
	query := `SELECT * FROM travel_stops WHERE profile_id = $1 ORDER BY start_date`
	err := r.db.SelectContext(ctx, &stops, query, profileID)
	return stops, err
}

func (r *travelStopRepository) ListByProfiles(ctx context.Context, profileIDs []uuid.UUID) (map[uuid.UUID][]*domain.TravelStop, error) {
	byProfile := make(map[uuid.UUID][]*domain.TravelStop, len(profileIDs))
	if len(profileIDs) == 0 {
		return byProfile, nil
	}

	ids := make([]string, len(profileIDs))
	for i, id := range profileIDs {
		ids[i] = id.String()
	}

	var stops []*domain.TravelStop
	query := `SELECT * FROM travel_stops WHERE profile_id = ANY($1) ORDER BY start_date`
	if err := r.db.SelectContext(ctx, &stops, query, pq.Array(ids)); err != nil {
		return nil, err
	}

	for _, stop := range stops {
		byProfile[stop.ProfileID] = append(byProfile[stop.ProfileID], stop)
	}
	return byProfile, nil
}
