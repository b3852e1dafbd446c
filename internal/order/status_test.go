package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("ForwardChain", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
		assert.True(t, StatusConfirmed.CanTransitionTo(StatusShipped))
		assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))
	})

	t.Run("CancelFromAnyNonTerminal", func(t *testing.T) {
		assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
		assert.True(t, StatusShipped.CanTransitionTo(StatusCancelled))
	})

	t.Run("NoSkippingSteps", func(t *testing.T) {
		assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
		assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
		assert.False(t, StatusConfirmed.CanTransitionTo(StatusDelivered))
	})

	t.Run("NoGoingBack", func(t *testing.T) {
		assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
		assert.False(t, StatusShipped.CanTransitionTo(StatusConfirmed))
		assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	})

	t.Run("TerminalStates", func(t *testing.T) {
		assert.True(t, StatusDelivered.Terminal())
		assert.True(t, StatusCancelled.Terminal())
		assert.False(t, StatusPending.Terminal())
	})
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("paid").Valid())
	assert.False(t, Status("").Valid())
}
