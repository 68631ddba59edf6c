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

type ContactRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewContactRepo(pool *pgxpool.Pool, logger *slog.Logger) *ContactRepo {
	return &ContactRepo{pool: pool, logger: logger}
}

func (r *ContactRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.TrustedContact, error) {
	const op = "postgres.Contact.List"

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, phone, relationship, created_at
		FROM trusted_contacts
		WHERE user_id = $1
		ORDER BY created_at`, userID)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.TrustedContact, 0)
	for rows.Next() {
		var c domain.TrustedContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Relationship, &c.CreatedAt); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.TrustedContact) error {
	const op = "postgres.Contact.Create"

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO trusted_contacts (id, user_id, name, phone, relationship, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.Name, c.Phone, c.Relationship, c.CreatedAt)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const op = "postgres.Contact.Delete"

	tag, err := r.pool.Exec(ctx, `DELETE FROM trusted_contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}
