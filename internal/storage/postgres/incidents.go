package postgres

import (
	"context"
	"log/slog"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

const incidentColumns = `id, user_id, incident_type, location_lat, location_lng, location_name,
	description, photos, is_anonymous, wants_contact, contact_phone, status, created_at`

func (r *IncidentRepo) Create(ctx context.Context, inc *domain.IncidentReport) error {
	const op = "postgres.Incident.Create"

	if inc.ID == uuid.Nil {
		inc.ID = uuid.New()
	}
	if inc.CreatedAt.IsZero() {
		inc.CreatedAt = time.Now().UTC()
	}
	if inc.Status == "" {
		inc.Status = domain.IncidentPending
	}
	if inc.Photos == nil {
		inc.Photos = [][]byte{}
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO incidents (`+incidentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		inc.ID, inc.UserID, inc.IncidentType, inc.Lat, inc.Lng, inc.LocationName,
		inc.Description, inc.Photos, inc.IsAnonymous, inc.WantsContact, inc.ContactPhone,
		inc.Status, inc.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

// ListByUser returns the newest 100 reports filed under userID.
func (r *IncidentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.IncidentReport, error) {
	const op = "postgres.Incident.ListByUser"

	rows, err := r.pool.Query(ctx, `SELECT `+incidentColumns+` FROM incidents
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT 100`, userID)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.IncidentReport, 0)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, *inc)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *IncidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentReport, error) {
	const op = "postgres.Incident.Get"

	inc, err := scanIncident(r.pool.QueryRow(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return inc, nil
}

func (r *IncidentRepo) List(ctx context.Context, page, limit int) ([]domain.IncidentReport, int64, error) {
	const op = "postgres.Incident.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM incidents`).Scan(&total); err != nil {
		r.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	rows, err := r.pool.Query(ctx, `SELECT `+incidentColumns+` FROM incidents
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.IncidentReport, 0, limit)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		out = append(out, *inc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return out, total, nil
}

func (r *IncidentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IncidentStatus) (*domain.IncidentReport, error) {
	const op = "postgres.Incident.UpdateStatus"

	inc, err := scanIncident(r.pool.QueryRow(ctx, `UPDATE incidents SET status = $2 WHERE id = $1
		RETURNING `+incidentColumns, id, status))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return inc, nil
}

func scanIncident(row scanner) (*domain.IncidentReport, error) {
	var inc domain.IncidentReport
	err := row.Scan(&inc.ID, &inc.UserID, &inc.IncidentType, &inc.Lat, &inc.Lng, &inc.LocationName,
		&inc.Description, &inc.Photos, &inc.IsAnonymous, &inc.WantsContact, &inc.ContactPhone,
		&inc.Status, &inc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inc, nil
}
