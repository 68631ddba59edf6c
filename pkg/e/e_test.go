package e_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"acadiasafe/pkg/e"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, e.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, e.ErrConflict},
		{"unique keeps violation", &pgconn.PgError{Code: "23505"}, e.ErrUniqueViolation},
		{"fk", &pgconn.PgError{Code: "23503"}, e.ErrInvalidInput},
		{"bad uuid text", &pgconn.PgError{Code: "22P02"}, e.ErrInvalidInput},
		{"other pg", &pgconn.PgError{Code: "42P01"}, e.ErrInternal},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), e.ErrDeadline},
		{"canceled", context.Canceled, e.ErrCanceled},
		{"unknown", errors.New("boom"), e.ErrInternal},
	}

	for _, tc := range cases {
		got := e.WrapError(context.Background(), "op", tc.err)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v in chain, got %v", tc.name, tc.want, got)
		}
	}

	if e.WrapError(context.Background(), "op", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
}

func TestWithDetail(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("service.Auth.Login: %w", e.WithDetail(e.ErrUnauthorized, "Invalid email or password"))

	if !errors.Is(err, e.ErrUnauthorized) {
		t.Fatalf("sentinel lost through detail wrapper")
	}
	msg, ok := e.Detail(err)
	if !ok || msg != "Invalid email or password" {
		t.Fatalf("unexpected detail %q %v", msg, ok)
	}
	if _, ok := e.Detail(e.ErrNotFound); ok {
		t.Fatalf("plain sentinel must not carry a detail")
	}
}
