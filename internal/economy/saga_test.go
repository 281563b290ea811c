package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to SagaState
		want     bool
	}{
		{SagaPending, SagaStep1Done, true},
		{SagaPending, SagaFailed, true},
		{SagaStep1Done, SagaCommitted, true},
		{SagaStep1Done, SagaCompensating, true},
		{SagaCompensating, SagaFailed, true},
		{SagaPending, SagaCommitted, false},
		{SagaPending, SagaCompensating, false},
		{SagaCommitted, SagaCompensating, false},
		{SagaFailed, SagaPending, false},
		{SagaCompensating, SagaCommitted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
