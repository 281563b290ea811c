package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

// parseUserUUID parses a user ID string to uuid.UUID. A malformed ID is
// invalid input, not a missing user.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf(ErrMsgInvalidUserID, userID, domain.ErrInvalidInput)
	}
	return u, nil
}

// classify maps driver errors onto the domain taxonomy. Constraint violations
// become the matching business refusal; anything else is Unavailable.
// refusal is the error reported for a check violation on the touched table.
func classify(err error, refusal error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeForeignKeyViolation:
			return domain.ErrUserNotFound
		case pgCodeCheckViolation:
			if refusal != nil {
				return refusal
			}
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}
