package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishShop/internal/domain"
)

const (
	// First purchase inserts owned=1; later ones bump the existing row.
	queryIncrementOwned = `
		INSERT INTO inventory_records (user_id, item_name, owned)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_name)
		DO UPDATE SET owned = inventory_records.owned + 1, updated_at = NOW()
		RETURNING owned`

	// Rows at zero are kept; the guard stops them going negative.
	queryDecrementOwned = `
		UPDATE inventory_records SET owned = owned - 1, updated_at = NOW()
		WHERE user_id = $1 AND item_name = $2 AND owned > 0
		RETURNING owned`

	queryGetOwned = `SELECT owned FROM inventory_records WHERE user_id = $1 AND item_name = $2`

	// One row with NULL columns means the user exists but owns nothing;
	// no rows means the user does not exist.
	queryListRecords = `
		SELECT r.item_name, r.owned, r.updated_at
		FROM users u
		LEFT JOIN inventory_records r ON r.user_id = u.user_id
		WHERE u.user_id = $1
		ORDER BY r.item_name`
)

// InventoryRepository stores per-user owned counts in inventory_records.
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Increment adds one to the owned count, creating the record on first use.
// An unknown user trips the foreign key and is reported as ErrUserNotFound.
func (r *InventoryRepository) Increment(ctx context.Context, userID, itemName string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var owned int
	if err := r.db.QueryRow(ctx, queryIncrementOwned, id, itemName).Scan(&owned); err != nil {
		return 0, fmt.Errorf(ErrMsgIncrementFailed, itemName, userID, classify(err, nil))
	}
	return owned, nil
}

// Decrement removes one from the owned count.
func (r *InventoryRepository) Decrement(ctx context.Context, userID, itemName string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var owned int
	err = r.db.QueryRow(ctx, queryDecrementOwned, id, itemName).Scan(&owned)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf(ErrMsgDecrementFailed, itemName, userID, domain.ErrNothingOwned)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDecrementFailed, itemName, userID, classify(err, domain.ErrNothingOwned))
	}
	return owned, nil
}

// GetOwned returns the owned count, or 0 when no record exists.
func (r *InventoryRepository) GetOwned(ctx context.Context, userID, itemName string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var owned int
	err = r.db.QueryRow(ctx, queryGetOwned, id, itemName).Scan(&owned)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetOwnedFailed, itemName, userID, classify(err, nil))
	}
	return owned, nil
}

// ListRecords returns every record for the user, zero counts included. An
// unknown user is ErrUserNotFound.
func (r *InventoryRepository) ListRecords(ctx context.Context, userID string) ([]domain.InventoryRecord, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, queryListRecords, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListInventoryFailed, userID, classify(err, nil))
	}
	defer rows.Close()

	records := make([]domain.InventoryRecord, 0)
	userSeen := false
	for rows.Next() {
		userSeen = true
		var (
			name      *string
			owned     *int
			updatedAt *time.Time
		)
		if err := rows.Scan(&name, &owned, &updatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgScanInventoryFailed, err)
		}
		if name == nil {
			continue
		}
		records = append(records, domain.InventoryRecord{
			UserID:    userID,
			ItemName:  *name,
			Owned:     *owned,
			UpdatedAt: *updatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListInventoryFailed, userID, classify(err, nil))
	}
	if !userSeen {
		return nil, fmt.Errorf(ErrMsgListInventoryFailed, userID, domain.ErrUserNotFound)
	}
	return records, nil
}
