package postgres

import (
	"context"
	"embed"
	"errors"
	"log/slog"

	"acadiasafe/internal/config"
	"acadiasafe/pkg/e"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Postgres struct {
	Pool      *pgxpool.Pool
	Users     *UserRepo
	Contacts  *ContactRepo
	SOS       *SOSRepo
	Incidents *IncidentRepo
	Escorts   *EscortRepo
	Walks     *WalkRepo
	Campus    *CampusRepo
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	logger.Info("Connecting to Postgres",
		slog.String("host", cfg.Postgres.Host),
		slog.String("db", cfg.Postgres.Database))

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.URL("postgres"))
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("Connected to Postgres successfully")

	if err := Migrate(cfg.Postgres.URL("pgx5"), logger); err != nil {
		pool.Close()
		return nil, err
	}

	return New(pool, logger), nil
}

// New builds the repository set over an existing pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	return &Postgres{
		Pool:      pool,
		Users:     NewUserRepo(pool, logger),
		Contacts:  NewContactRepo(pool, logger),
		SOS:       NewSOSRepo(pool, logger),
		Incidents: NewIncidentRepo(pool, logger),
		Escorts:   NewEscortRepo(pool, logger),
		Walks:     NewWalkRepo(pool, logger),
		Campus:    NewCampusRepo(pool, logger),
	}
}

// Migrate applies the embedded schema. databaseURL uses the pgx5:// scheme.
func Migrate(databaseURL string, logger *slog.Logger) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return e.Wrap("storage.pg.Migrate.iofs", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return e.Wrap("storage.pg.Migrate.New", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("migrate close", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return e.Wrap("storage.pg.Migrate.Up", err)
	}

	logger.Info("Database migration was run successfully")
	return nil
}

func (p *Postgres) Close() {
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}
