package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalkRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewWalkRepo(pool *pgxpool.Pool, logger *slog.Logger) *WalkRepo {
	return &WalkRepo{pool: pool, logger: logger}
}

const walkColumns = `id, user_id, contact_ids, start_time, duration_minutes, end_time,
	current_lat, current_lng, status`

func (r *WalkRepo) Create(ctx context.Context, w *domain.FriendWalk) error {
	const op = "postgres.Walk.Create"

	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = domain.WalkActive
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO friend_walks (`+walkColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		w.ID, w.UserID, w.ContactIDs, w.StartTime, w.DurationMinutes, w.EndTime,
		w.CurrentLat, w.CurrentLng, w.Status)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *WalkRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.FriendWalk, error) {
	const op = "postgres.Walk.GetActive"

	w, err := scanWalk(r.pool.QueryRow(ctx, `SELECT `+walkColumns+` FROM friend_walks
		WHERE user_id = $1 AND status = $2`, userID, domain.WalkActive))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return w, nil
}

func (r *WalkRepo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error) {
	const op = "postgres.Walk.Get"

	w, err := scanWalk(r.pool.QueryRow(ctx, `SELECT `+walkColumns+` FROM friend_walks
		WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return w, nil
}

func (r *WalkRepo) UpdateLocation(ctx context.Context, userID, id uuid.UUID, lat, lng float64) error {
	const op = "postgres.Walk.UpdateLocation"

	tag, err := r.pool.Exec(ctx, `UPDATE friend_walks SET current_lat = $3, current_lng = $4
		WHERE id = $1 AND user_id = $2 AND status = $5`, id, userID, lat, lng, domain.WalkActive)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

// Extend pushes end_time out by minutes; the row must be bounded and active.
func (r *WalkRepo) Extend(ctx context.Context, userID, id uuid.UUID, minutes int) (*domain.FriendWalk, error) {
	const op = "postgres.Walk.Extend"

	w, err := scanWalk(r.pool.QueryRow(ctx, `UPDATE friend_walks
		SET end_time = end_time + make_interval(mins => $3),
			duration_minutes = duration_minutes + $3
		WHERE id = $1 AND user_id = $2 AND status = $4 AND end_time IS NOT NULL
		RETURNING `+walkColumns, id, userID, minutes, domain.WalkActive))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return w, nil
}

func (r *WalkRepo) Complete(ctx context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error) {
	const op = "postgres.Walk.Complete"

	w, err := scanWalk(r.pool.QueryRow(ctx, `UPDATE friend_walks SET status = $3
		WHERE id = $1 AND user_id = $2 AND status = $4
		RETURNING `+walkColumns, id, userID, domain.WalkCompleted, domain.WalkActive))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return w, nil
}

func scanWalk(row scanner) (*domain.FriendWalk, error) {
	var w domain.FriendWalk
	var end *time.Time
	err := row.Scan(&w.ID, &w.UserID, &w.ContactIDs, &w.StartTime, &w.DurationMinutes, &end,
		&w.CurrentLat, &w.CurrentLng, &w.Status)
	if err != nil {
		return nil, err
	}
	if end != nil {
		t := end.UTC()
		w.EndTime = &t
	}
	w.StartTime = w.StartTime.UTC()
	return &w, nil
}
