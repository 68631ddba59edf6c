package postgres

import (
	"context"
	"log/slog"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampusRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCampusRepo(pool *pgxpool.Pool, logger *slog.Logger) *CampusRepo {
	return &CampusRepo{pool: pool, logger: logger}
}

const alertColumns = `id, alert_type, title, message, created_at, is_read`

func (r *CampusRepo) ListAlerts(ctx context.Context) ([]domain.CampusAlert, error) {
	const op = "postgres.Campus.ListAlerts"

	rows, err := r.pool.Query(ctx, `SELECT `+alertColumns+` FROM campus_alerts
		ORDER BY created_at DESC LIMIT 50`)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.CampusAlert, 0)
	for rows.Next() {
		var a domain.CampusAlert
		if err := rows.Scan(&a.ID, &a.AlertType, &a.Title, &a.Message, &a.CreatedAt, &a.IsRead); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *CampusRepo) GetAlert(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error) {
	const op = "postgres.Campus.GetAlert"

	var a domain.CampusAlert
	err := r.pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM campus_alerts WHERE id = $1`, id).
		Scan(&a.ID, &a.AlertType, &a.Title, &a.Message, &a.CreatedAt, &a.IsRead)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return &a, nil
}

func (r *CampusRepo) CreateAlert(ctx context.Context, a *domain.CampusAlert) error {
	const op = "postgres.Campus.CreateAlert"

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO campus_alerts (`+alertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`, a.ID, a.AlertType, a.Title, a.Message, a.CreatedAt, a.IsRead)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// ListLocations returns up to 100 locations, optionally of one type.
func (r *CampusRepo) ListLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error) {
	const op = "postgres.Campus.ListLocations"

	rows, err := r.pool.Query(ctx, `SELECT id, name, description, location_type, lat, lng
		FROM campus_locations
		WHERE $1::text IS NULL OR location_type = $1
		ORDER BY name LIMIT 100`, locType)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.CampusLocation, 0)
	for rows.Next() {
		var l domain.CampusLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.LocationType, &l.Lat, &l.Lng); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// Seed replaces all alerts and locations in one transaction.
func (r *CampusRepo) Seed(ctx context.Context, alerts []domain.CampusAlert, locations []domain.CampusLocation) error {
	const op = "postgres.Campus.Seed"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM campus_alerts`); err != nil {
		return e.WrapError(ctx, op, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM campus_locations`); err != nil {
		return e.WrapError(ctx, op, err)
	}

	batch := &pgx.Batch{}
	for _, a := range alerts {
		batch.Queue(`INSERT INTO campus_alerts (`+alertColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.AlertType, a.Title, a.Message, a.CreatedAt, a.IsRead)
	}
	for _, l := range locations {
		batch.Queue(`INSERT INTO campus_locations (id, name, description, location_type, lat, lng)
			VALUES ($1, $2, $3, $4, $5, $6)`, l.ID, l.Name, l.Description, l.LocationType, l.Lat, l.Lng)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.logger.Error("seed batch failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
