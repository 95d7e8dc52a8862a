package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vanmates/vanmates-backend/internal/domain"
	"github.com/vanmates/vanmates-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	// The (swiper_id, swiped_id) unique constraint decides duplicates; no
	// prior SELECT, so concurrent replays cannot slip through the gap.
	query := `
		INSERT INTO swipes (id, swiper_id, swiped_id, direction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (swiper_id, swiped_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, swipe.ID, swipe.SwiperID, swipe.SwipedID, swipe.Direction).
		Scan(&swipe.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAlreadySwiped
	}
	return err
}

func (r *swipeRepository) GetByUsers(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE swiper_id = $1 AND swiped_id = $2`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) GetReverseLike(ctx context.Context, swiperID, swipedID uuid.UUID) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT * FROM swipes
		WHERE swiper_id = $1 AND swiped_id = $2 AND direction IN ('right', 'up')
	`
	err := r.db.GetContext(ctx, &swipe, query, swipedID, swiperID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListLikesReceived(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `
		SELECT s.* FROM swipes s
		WHERE s.swiped_id = $1
		  AND s.direction IN ('right', 'up')
		  AND NOT EXISTS (
		      SELECT 1 FROM swipes back
		      WHERE back.swiper_id = $1 AND back.swiped_id = s.swiper_id
		  )
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &swipes, query, userID, limit, offset)
	return swipes, err
}
