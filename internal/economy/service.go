// Package economy coordinates buys and sells across the ledger and the
// inventory. Each request is a two-step saga: both steps apply, or the
// first is compensated and the caller sees domain.ErrTransactionFailed.
package economy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BrandishShop/internal/concurrency"
	"github.com/osse101/BrandishShop/internal/domain"
	"github.com/osse101/BrandishShop/internal/event"
	"github.com/osse101/BrandishShop/internal/inventory"
	"github.com/osse101/BrandishShop/internal/logger"
	"github.com/osse101/BrandishShop/internal/metrics"
	"github.com/osse101/BrandishShop/internal/reconcile"
)

// Service defines the interface for shop trades
type Service interface {
	Buy(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error)
	Sell(ctx context.Context, userID, itemName string, cost int64) (*domain.Receipt, error)
	SellIndexed(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error)
	Shutdown(ctx context.Context) error
}

// Ledger is the slice of the ledger service a saga needs
type Ledger interface {
	Debit(ctx context.Context, userID string, amount int64) (int64, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}

// Inventory is the slice of the inventory service a saga needs
type Inventory interface {
	Increment(ctx context.Context, userID, itemName string) (int, error)
	Decrement(ctx context.Context, userID, itemName string) (int, error)
}

// Catalog resolves an item index to a priced catalog entry
type Catalog interface {
	Lookup(ctx context.Context, index string) (domain.Item, error)
}

// Journal records sagas left inconsistent for manual reconciliation
type Journal interface {
	Record(ctx context.Context, entry reconcile.Entry) error
}

// Config tunes the coordinator
type Config struct {
	CompensationTimeout time.Duration
}

type service struct {
	ledger    Ledger
	inventory Inventory
	catalog   Catalog
	journal   Journal
	bus       event.Bus
	locks     *concurrency.LockManager

	compensationTimeout time.Duration

	mu           sync.RWMutex
	shuttingDown bool
	wg           sync.WaitGroup
}

// NewService creates a new economy service. bus may be nil, in which case
// no trade events are published.
func NewService(ledger Ledger, inv Inventory, catalog Catalog, journal Journal, bus event.Bus, cfg Config) Service {
	timeout := cfg.CompensationTimeout
	if timeout <= 0 {
		timeout = DefaultCompensationTimeout
	}
	return &service{
		ledger:              ledger,
		inventory:           inv,
		catalog:             catalog,
		journal:             journal,
		bus:                 bus,
		locks:               concurrency.NewLockManager(),
		compensationTimeout: timeout,
	}
}

// Buy prices itemIndex from the catalog, debits the cost and adds one to the
// user's inventory. An empty itemName takes the catalog name.
func (s *service) Buy(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "user_id", userID, "item_index", itemIndex, "item_name", itemName)

	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	name, cost, err := s.price(ctx, itemIndex, itemName)
	if err != nil {
		return nil, err
	}

	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	unlock := s.locks.Lock(userID)
	defer unlock()

	sg := newSaga(OperationBuy, userID, name, cost)

	gold, err := s.ledger.Debit(ctx, userID, cost)
	if err != nil {
		s.firstStepFailed(ctx, sg, StepLedgerDebit, err)
		return nil, fmt.Errorf(ErrMsgDebitFailedFmt, cost, name, err)
	}
	sg.transition(ctx, SagaStep1Done, StepLedgerDebit)

	owned, err := s.inventory.Increment(ctx, userID, name)
	if err != nil {
		return nil, s.compensate(ctx, sg, StepInventoryIncrement, err, StepLedgerCredit, func(cctx context.Context) error {
			_, cerr := s.ledger.Credit(cctx, userID, cost)
			return cerr
		})
	}
	sg.transition(ctx, SagaCommitted, StepInventoryIncrement)

	receipt := &domain.Receipt{ItemName: name, Cost: cost, Gold: gold, Owned: owned}
	metrics.SagaOutcomes.WithLabelValues(OperationBuy, metrics.OutcomeCommitted).Inc()
	log.Info(LogMsgItemPurchased, "user_id", userID, "item_name", name, "cost", cost, "gold", gold, "owned", owned)
	s.publish(ctx, event.NewTradeEvent(event.ItemBought, userID, *receipt))
	return receipt, nil
}

// Sell takes one itemName from the user's inventory and credits cost
func (s *service) Sell(ctx context.Context, userID, itemName string, cost int64) (*domain.Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "user_id", userID, "item_name", itemName, "cost", cost)

	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if cost <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidCostFmt, cost, domain.ErrInvalidInput)
	}
	name, err := inventory.NormalizeItemName(itemName)
	if err != nil {
		return nil, err
	}
	return s.sell(ctx, userID, name, cost)
}

// SellIndexed is Sell with the cost taken from the catalog entry for itemIndex
func (s *service) SellIndexed(ctx context.Context, userID, itemIndex, itemName string) (*domain.Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "user_id", userID, "item_index", itemIndex, "item_name", itemName)

	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	name, cost, err := s.price(ctx, itemIndex, itemName)
	if err != nil {
		return nil, err
	}
	return s.sell(ctx, userID, name, cost)
}

func (s *service) sell(ctx context.Context, userID, name string, cost int64) (*domain.Receipt, error) {
	log := logger.FromContext(ctx)

	done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	unlock := s.locks.Lock(userID)
	defer unlock()

	sg := newSaga(OperationSell, userID, name, cost)

	owned, err := s.inventory.Decrement(ctx, userID, name)
	if err != nil {
		s.firstStepFailed(ctx, sg, StepInventoryDecrement, err)
		return nil, fmt.Errorf(ErrMsgDecrementFmt, name, err)
	}
	sg.transition(ctx, SagaStep1Done, StepInventoryDecrement)

	gold, err := s.ledger.Credit(ctx, userID, cost)
	if err != nil {
		return nil, s.compensate(ctx, sg, StepLedgerCredit, err, StepInventoryIncrement, func(cctx context.Context) error {
			_, cerr := s.inventory.Increment(cctx, userID, name)
			return cerr
		})
	}
	sg.transition(ctx, SagaCommitted, StepLedgerCredit)

	receipt := &domain.Receipt{ItemName: name, Cost: cost, Gold: gold, Owned: owned}
	metrics.SagaOutcomes.WithLabelValues(OperationSell, metrics.OutcomeCommitted).Inc()
	log.Info(LogMsgItemSold, "user_id", userID, "item_name", name, "cost", cost, "gold", gold, "owned", owned)
	s.publish(ctx, event.NewTradeEvent(event.ItemSold, userID, *receipt))
	return receipt, nil
}

// price resolves the catalog entry for itemIndex and its shop price. The
// returned name is itemName when given, otherwise the catalog name.
func (s *service) price(ctx context.Context, itemIndex, itemName string) (string, int64, error) {
	item, err := s.catalog.Lookup(ctx, itemIndex)
	if err != nil {
		return "", 0, fmt.Errorf(ErrMsgLookupFailedFmt, itemIndex, err)
	}
	cost, err := domain.PriceOf(item)
	if err != nil {
		return "", 0, fmt.Errorf(ErrMsgPriceFailedFmt, itemIndex, err)
	}
	if strings.TrimSpace(itemName) == "" {
		itemName = item.ItemName()
	}
	name, err := inventory.NormalizeItemName(itemName)
	if err != nil {
		return "", 0, err
	}
	return name, cost, nil
}

// firstStepFailed closes a saga whose first step did not apply
func (s *service) firstStepFailed(ctx context.Context, sg *saga, step Step, err error) {
	log := logger.FromContext(ctx)
	sg.transition(ctx, SagaFailed, step)

	outcome := metrics.OutcomeFailed
	if isRefusal(err) {
		outcome = metrics.OutcomeRefused
		log.Info(LogMsgStepRefused, "operation", sg.operation, "user_id", sg.userID, "item_name", sg.itemName, "step", step, "error", err)
	} else {
		log.Error(LogMsgStepFailed, "operation", sg.operation, "user_id", sg.userID, "item_name", sg.itemName, "step", step, "error", err)
	}
	metrics.SagaOutcomes.WithLabelValues(sg.operation, outcome).Inc()
}

// compensate undoes step one after failedStep returned stepErr. undo runs
// once, detached from request cancellation and bounded by the compensation
// timeout. The caller always gets domain.ErrTransactionFailed.
func (s *service) compensate(ctx context.Context, sg *saga, failedStep Step, stepErr error, undoStep Step, undo func(context.Context) error) error {
	log := logger.FromContext(ctx)
	sg.transition(ctx, SagaCompensating, failedStep)

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.compensationTimeout)
	defer cancel()

	compErr := undo(cctx)
	sg.transition(ctx, SagaFailed, undoStep)
	metrics.SagaOutcomes.WithLabelValues(sg.operation, metrics.OutcomeFailed).Inc()

	if compErr == nil {
		metrics.SagaCompensations.WithLabelValues(sg.operation, metrics.OutcomeRecovered).Inc()
		log.Warn(LogMsgCompensated,
			"operation", sg.operation,
			"user_id", sg.userID,
			"item_name", sg.itemName,
			"cost", sg.cost,
			"failed_step", failedStep,
			"error", stepErr)
	} else {
		metrics.SagaCompensations.WithLabelValues(sg.operation, metrics.OutcomeFailed).Inc()
		log.Error(LogMsgCompensationFailed,
			"operation", sg.operation,
			"user_id", sg.userID,
			"item_name", sg.itemName,
			"cost", sg.cost,
			"failed_step", failedStep,
			"error", stepErr,
			"compensation_error", compErr)

		entry := reconcile.Entry{
			Operation:         sg.operation,
			UserID:            sg.userID,
			ItemName:          sg.itemName,
			Cost:              sg.cost,
			FailedStep:        string(failedStep),
			StepError:         stepErr.Error(),
			CompensationError: compErr.Error(),
			Correction:        correction(sg),
		}
		if err := s.journal.Record(cctx, entry); err != nil {
			log.Error(LogMsgJournalWriteFailed, "user_id", sg.userID, "item_name", sg.itemName, "error", err)
		}
	}

	s.publish(ctx, event.NewSagaCompensatedEvent(event.SagaCompensatedPayloadV1{
		Operation:  sg.operation,
		UserID:     sg.userID,
		ItemName:   sg.itemName,
		Cost:       sg.cost,
		FailedStep: string(failedStep),
		Recovered:  compErr == nil,
	}))

	return fmt.Errorf(ErrMsgSagaFailedFmt, sg.operation, failedStep, domain.ErrTransactionFailed, stepErr)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.WithoutCancel(ctx), evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

// begin registers an in-flight saga. It fails once Shutdown has started.
func (s *service) begin() (func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shuttingDown {
		return nil, fmt.Errorf("%s: %w", ErrMsgShuttingDown, domain.ErrUnavailable)
	}
	s.wg.Add(1)
	return s.wg.Done, nil
}

// Shutdown refuses new sagas and waits for in-flight ones to finish
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEconomyShuttingDown)

	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgEconomyShutdownDone)
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}

func correction(sg *saga) string {
	if sg.operation == OperationBuy {
		return fmt.Sprintf(CorrectionCreditFmt, sg.cost, sg.userID)
	}
	return fmt.Sprintf(CorrectionRestoreFmt, sg.itemName, sg.userID)
}

func isRefusal(err error) bool {
	return errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrNothingOwned) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf(ErrMsgInvalidUserIDFmt, userID, domain.ErrInvalidInput)
	}
	return nil
}
