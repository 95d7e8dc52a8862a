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

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, error) {
	user1ID, user2ID := domain.CanonicalPair(match.User1ID, match.User2ID)
	if user1ID != match.User1ID {
		match.User1LikedAt, match.User2LikedAt = match.User2LikedAt, match.User1LikedAt
	}
	match.User1ID, match.User2ID = user1ID, user2ID

	// ON CONFLICT DO NOTHING plus RETURNING: a row comes back only when this
	// call inserted it, which is the exactly-once match-formed signal.
	query := `
		INSERT INTO matches (id, user1_id, user2_id, user1_liked_at, user2_liked_at, matched_at, is_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		match.ID, match.User1ID, match.User2ID,
		match.User1LikedAt, match.User2LikedAt, match.MatchedAt, match.IsMatch,
	).Scan(&match.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Match, error) {
	user1ID, user2ID = domain.CanonicalPair(user1ID, user2ID)

	var match domain.Match
	query := `SELECT * FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_match = true
		ORDER BY matched_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, userID, limit, offset)
	return matches, err
}

func (r *matchRepository) SetOpeners(ctx context.Context, id uuid.UUID, openers []string) error {
	query := `UPDATE matches SET openers = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(openers), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
