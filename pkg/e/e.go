package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternal           = errors.New("internal error")
	ErrDeadline           = errors.New("deadline exceeded")
	ErrCanceled           = errors.New("context canceled")
	ErrUniqueViolation    = errors.New("unique violation")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrRateLimited        = errors.New("too many requests")
	ErrQueueEmpty         = errors.New("notification queue is empty")
)

// WrapError maps driver and context errors onto the sentinel set so handlers
// can pick a status code with errors.Is.
func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w: %w", op, ErrConflict, ErrUniqueViolation)
		case "23503", "23514", "22P02":
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// DetailError attaches a message that is safe to return to API callers.
type DetailError struct {
	Err    error
	Detail string
}

func (d *DetailError) Error() string { return d.Detail + ": " + d.Err.Error() }

func (d *DetailError) Unwrap() error { return d.Err }

func WithDetail(err error, detail string) error {
	return &DetailError{Err: err, Detail: detail}
}

// Detail returns the caller-facing message carried by err, if any.
func Detail(err error) (string, bool) {
	var d *DetailError
	if errors.As(err, &d) {
		return d.Detail, true
	}
	return "", false
}
