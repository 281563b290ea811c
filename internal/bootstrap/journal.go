package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishShop/internal/config"
	"github.com/osse101/BrandishShop/internal/reconcile"
)

// OpenReconciliationJournal opens the append-only journal that records
// trades left inconsistent by a failed compensation.
func OpenReconciliationJournal(cfg *config.Config) (*reconcile.Journal, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.ReconciliationLogPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateJournalDir, err)
	}

	journal, err := reconcile.OpenJournal(cfg.ReconciliationLogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenJournal, err)
	}
	return journal, nil
}
