package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/database/postgres"
)

type CreateUserCommand struct{}

func (c *CreateUserCommand) Name() string {
	return "create-user"
}

func (c *CreateUserCommand) Description() string {
	return "Create a shop account: --gold N [--item name=count ...]"
}

func (c *CreateUserCommand) Run(args []string) error {
	gold, holdings, err := parseCreateUserArgs(args)
	if err != nil {
		return err
	}

	return withPool(func(ctx context.Context, pool *pgxpool.Pool) error {
		user, err := postgres.NewUserRepository(pool).CreateUser(ctx, gold, holdings)
		if err != nil {
			return err
		}
		PrintSuccess("Created user %s with %d gold", user.ID, user.Gold)
		return nil
	})
}

// itemFlags collects repeated --item name=count values
type itemFlags map[string]int

func (f itemFlags) String() string {
	parts := make([]string, 0, len(f))
	for name, n := range f {
		parts = append(parts, fmt.Sprintf("%s=%d", name, n))
	}
	return strings.Join(parts, ",")
}

func (f itemFlags) Set(v string) error {
	name, countStr, ok := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=count, got %q", v)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return fmt.Errorf("invalid count in %q", v)
	}
	f[name] += count
	return nil
}

func parseCreateUserArgs(args []string) (int64, map[string]int, error) {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	holdings := itemFlags{}
	gold := fs.Int64("gold", 0, "starting gold")
	fs.Var(holdings, "item", "starting holding as name=count, repeatable")

	if err := fs.Parse(args); err != nil {
		return 0, nil, err
	}
	if *gold < 0 {
		return 0, nil, fmt.Errorf("--gold must not be negative, got %d", *gold)
	}
	return *gold, holdings, nil
}
