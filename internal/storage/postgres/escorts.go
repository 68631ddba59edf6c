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

type EscortRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEscortRepo(pool *pgxpool.Pool, logger *slog.Logger) *EscortRepo {
	return &EscortRepo{pool: pool, logger: logger}
}

const escortColumns = `id, user_id, pickup_lat, pickup_lng, pickup_name, destination_lat, destination_lng,
	destination_name, notes, status, officer_name, officer_photo, estimated_wait, created_at`

// Create relies on the partial unique index to refuse a second active
// request; the violation surfaces as e.ErrConflict.
func (r *EscortRepo) Create(ctx context.Context, req *domain.EscortRequest) error {
	const op = "postgres.Escort.Create"

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = domain.EscortPending
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO escort_requests (`+escortColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		req.ID, req.UserID, req.PickupLat, req.PickupLng, req.PickupName, req.DestinationLat,
		req.DestinationLng, req.DestinationName, req.Notes, req.Status, req.OfficerName,
		req.OfficerPhoto, req.EstimatedWait, req.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *EscortRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.EscortRequest, error) {
	const op = "postgres.Escort.GetActive"

	req, err := scanEscort(r.pool.QueryRow(ctx, `SELECT `+escortColumns+` FROM escort_requests
		WHERE user_id = $1 AND status IN ($2, $3)`, userID, domain.EscortPending, domain.EscortAssigned))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return req, nil
}

func (r *EscortRepo) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	const op = "postgres.Escort.Cancel"

	tag, err := r.pool.Exec(ctx, `UPDATE escort_requests SET status = $3
		WHERE id = $1 AND user_id = $2 AND status IN ($4, $5)`,
		id, userID, domain.EscortCancelled, domain.EscortPending, domain.EscortAssigned)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

// Assign moves a pending request to assigned and returns the updated row.
func (r *EscortRepo) Assign(ctx context.Context, id uuid.UUID, officer string, wait int) (*domain.EscortRequest, error) {
	const op = "postgres.Escort.Assign"

	req, err := scanEscort(r.pool.QueryRow(ctx, `UPDATE escort_requests
		SET status = $2, officer_name = $3, officer_photo = NULL, estimated_wait = $4
		WHERE id = $1 AND status = $5
		RETURNING `+escortColumns, id, domain.EscortAssigned, officer, wait, domain.EscortPending))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return req, nil
}

func (r *EscortRepo) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.EscortRequest, error) {
	const op = "postgres.Escort.ListPendingBefore"

	rows, err := r.pool.Query(ctx, `SELECT `+escortColumns+` FROM escort_requests
		WHERE status = $1 AND created_at <= $2
		ORDER BY created_at LIMIT $3`, domain.EscortPending, before, limit)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.EscortRequest, 0)
	for rows.Next() {
		req, err := scanEscort(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func scanEscort(row scanner) (*domain.EscortRequest, error) {
	var r domain.EscortRequest
	err := row.Scan(&r.ID, &r.UserID, &r.PickupLat, &r.PickupLng, &r.PickupName, &r.DestinationLat,
		&r.DestinationLng, &r.DestinationName, &r.Notes, &r.Status, &r.OfficerName, &r.OfficerPhoto,
		&r.EstimatedWait, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
