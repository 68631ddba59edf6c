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

type SOSRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSOSRepo(pool *pgxpool.Pool, logger *slog.Logger) *SOSRepo {
	return &SOSRepo{pool: pool, logger: logger}
}

const sosColumns = `id, user_id, user_name, user_phone, location_lat, location_lng, alert_type, status, created_at`

func (r *SOSRepo) Create(ctx context.Context, a *domain.SOSAlert) error {
	const op = "postgres.SOS.Create"

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = domain.SOSActive
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO sos_alerts (`+sosColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.UserName, a.UserPhone, a.Lat, a.Lng, a.AlertType, a.Status, a.CreatedAt)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// Cancel flips an active alert owned by userID to cancelled.
func (r *SOSRepo) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	const op = "postgres.SOS.Cancel"

	tag, err := r.pool.Exec(ctx, `
		UPDATE sos_alerts SET status = $3
		WHERE id = $1 AND user_id = $2 AND status = $4`,
		id, userID, domain.SOSCancelled, domain.SOSActive)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *SOSRepo) GetActive(ctx context.Context, userID uuid.UUID) (*domain.SOSAlert, error) {
	const op = "postgres.SOS.GetActive"

	row := r.pool.QueryRow(ctx, `SELECT `+sosColumns+` FROM sos_alerts
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC LIMIT 1`, userID, domain.SOSActive)
	a, err := scanSOS(row)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return a, nil
}

func (r *SOSRepo) ListActive(ctx context.Context) ([]domain.SOSAlert, error) {
	const op = "postgres.SOS.ListActive"

	rows, err := r.pool.Query(ctx, `SELECT `+sosColumns+` FROM sos_alerts
		WHERE status = $1 ORDER BY created_at DESC LIMIT 100`, domain.SOSActive)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.SOSAlert, 0)
	for rows.Next() {
		a, err := scanSOS(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *SOSRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.SOS.Resolve"

	tag, err := r.pool.Exec(ctx, `UPDATE sos_alerts SET status = $2 WHERE id = $1 AND status = $3`,
		id, domain.SOSResolved, domain.SOSActive)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func scanSOS(row scanner) (*domain.SOSAlert, error) {
	var a domain.SOSAlert
	err := row.Scan(&a.ID, &a.UserID, &a.UserName, &a.UserPhone, &a.Lat, &a.Lng, &a.AlertType, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
