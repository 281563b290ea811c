package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/database"
)

const commandTimeout = 30 * time.Second

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check that the database is reachable and report the schema version"
}

func (c *CheckDBCommand) Run(args []string) error {
	return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
		version, err := database.MigrationVersion(ctx, pool)
		if err != nil {
			return err
		}
		PrintSuccess("Database is ready (schema version %d)", version)
		return nil
	})
}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply pending database migrations"
}

func (c *MigrateCommand) Run(args []string) error {
	return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		version, err := database.MigrationVersion(ctx, pool)
		if err != nil {
			return err
		}
		PrintSuccess("Migrations applied (schema version %d)", version)
		return nil
	})
}

func withPool(fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, err := database.NewPool(ctx, dbURL(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool)
}
