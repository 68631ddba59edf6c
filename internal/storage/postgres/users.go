package postgres

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepo(pool *pgxpool.Pool, logger *slog.Logger) *UserRepo {
	return &UserRepo{pool: pool, logger: logger}
}

const userColumns = `id, full_name, email, phone, password_hash, profile_photo,
	emergency_contact_name, emergency_contact_phone, created_at`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	const op = "postgres.User.Create"

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(u.Email)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.FullName, u.Email, u.Phone, u.PasswordHash, u.ProfilePhoto,
		u.EmergencyContactName, u.EmergencyContactPhone, u.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.User.GetByEmail"

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	u, err := scanUser(row)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "postgres.User.GetByID"

	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return u, nil
}

// Update applies the non-nil fields of req and returns the stored row.
func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, req domain.UpdateProfileRequest) (*domain.User, error) {
	const op = "postgres.User.Update"

	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			profile_photo = COALESCE($4, profile_photo),
			emergency_contact_name = COALESCE($5, emergency_contact_name),
			emergency_contact_phone = COALESCE($6, emergency_contact_phone)
		WHERE id = $1
		RETURNING `+userColumns,
		id, req.FullName, req.Phone, req.ProfilePhoto, req.EmergencyContactName, req.EmergencyContactPhone,
	)
	u, err := scanUser(row)
	if err != nil {
		r.logger.Error("db update failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.ProfilePhoto,
		&u.EmergencyContactName, &u.EmergencyContactPhone, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
