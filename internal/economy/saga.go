package economy

import (
	"context"

	"github.com/osse101/BrandishShop/internal/logger"
)

// SagaState is the lifecycle position of one buy or sell
type SagaState string

const (
	SagaPending      SagaState = "pending"
	SagaStep1Done    SagaState = "step1_done"
	SagaCommitted    SagaState = "committed"
	SagaCompensating SagaState = "compensating"
	SagaFailed       SagaState = "failed"
)

// Step names a saga action
type Step string

const (
	StepLedgerDebit        Step = "ledger_debit"
	StepLedgerCredit       Step = "ledger_credit"
	StepInventoryIncrement Step = "inventory_increment"
	StepInventoryDecrement Step = "inventory_decrement"
)

// Pending -> Failed covers a refused or failed first step, where nothing
// was applied and there is nothing to compensate.
var sagaTransitions = map[SagaState][]SagaState{
	SagaPending:      {SagaStep1Done, SagaFailed},
	SagaStep1Done:    {SagaCommitted, SagaCompensating},
	SagaCompensating: {SagaFailed},
}

// CanTransition reports whether a saga may move from one state to another
func CanTransition(from, to SagaState) bool {
	for _, next := range sagaTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// saga tracks one request. It is not shared between goroutines.
type saga struct {
	operation string
	userID    string
	itemName  string
	cost      int64
	state     SagaState
}

func newSaga(operation, userID, itemName string, cost int64) *saga {
	return &saga{
		operation: operation,
		userID:    userID,
		itemName:  itemName,
		cost:      cost,
		state:     SagaPending,
	}
}

func (sg *saga) transition(ctx context.Context, next SagaState, step Step) {
	log := logger.FromContext(ctx)
	if !CanTransition(sg.state, next) {
		log.Error(LogMsgSagaIllegalState,
			"operation", sg.operation,
			"user_id", sg.userID,
			"item_name", sg.itemName,
			"step", step,
			"from", sg.state,
			"to", next)
	}
	log.Debug(LogMsgSagaTransition,
		"operation", sg.operation,
		"user_id", sg.userID,
		"item_name", sg.itemName,
		"step", step,
		"from", sg.state,
		"state", next)
	sg.state = next
}
