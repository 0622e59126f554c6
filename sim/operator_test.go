package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperator_StartsIdle(t *testing.T) {
	op := NewOperator(0, 3.0, 1)

	assert.False(t, op.Busy())
	assert.True(t, math.IsInf(op.CompletionTime(), 1))
	assert.Equal(t, 0, op.ProcessedCount())
	_, _, ok := op.CurrentOrder()
	assert.False(t, ok)
}

func TestOperator_StartServing(t *testing.T) {
	op := NewOperator(2, 3.0, 1)

	ev, err := op.StartServing(1, 4, 10.0)
	require.NoError(t, err)

	assert.Equal(t, EventDeliveryCoordinationStart, ev.Kind)
	assert.Equal(t, 10.0, ev.Time)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 4, ev.OrderID)
	assert.Equal(t, 2, ev.OperatorID)

	assert.True(t, op.Busy())
	assert.Equal(t, 1, op.ProcessedCount())
	if op.CompletionTime() <= 10.0 || math.IsInf(op.CompletionTime(), 1) {
		t.Errorf("completion time = %g, want finite and after start", op.CompletionTime())
	}
	restID, ordID, ok := op.CurrentOrder()
	require.True(t, ok)
	assert.Equal(t, 1, restID)
	assert.Equal(t, 4, ordID)
}

func TestOperator_StartServing_WhileBusy(t *testing.T) {
	op := NewOperator(0, 3.0, 1)
	_, err := op.StartServing(1, 0, 0)
	require.NoError(t, err)

	_, err = op.StartServing(2, 0, 1)
	if !errors.Is(err, ErrOperatorBusy) {
		t.Fatalf("error = %v, want ErrOperatorBusy", err)
	}
}

func TestOperator_FinishServing(t *testing.T) {
	op := NewOperator(1, 3.0, 1)
	_, err := op.StartServing(2, 7, 5.0)
	require.NoError(t, err)
	done := op.CompletionTime()

	ev, err := op.FinishServing(done)
	require.NoError(t, err)

	assert.Equal(t, EventOperatorFree, ev.Kind)
	assert.Equal(t, done, ev.Time)
	assert.Equal(t, 2, ev.RestaurantID)
	assert.Equal(t, 7, ev.OrderID)
	assert.Equal(t, 1, ev.OperatorID)

	assert.False(t, op.Busy())
	assert.True(t, math.IsInf(op.CompletionTime(), 1))
	// Processed count survives the completion.
	assert.Equal(t, 1, op.ProcessedCount())
}

func TestOperator_FinishServing_WhileIdle(t *testing.T) {
	op := NewOperator(0, 3.0, 1)
	_, err := op.FinishServing(0)
	if !errors.Is(err, ErrOperatorNotBusy) {
		t.Fatalf("error = %v, want ErrOperatorNotBusy", err)
	}
}

// TestOperator_SamplingDeterminism tests that operators with the same seed
// draw identical service times.
func TestOperator_SamplingDeterminism(t *testing.T) {
	opA := NewOperator(0, 3.0, 99)
	opB := NewOperator(0, 3.0, 99)

	for i := 0; i < 10; i++ {
		evA, err := opA.StartServing(0, i, 0)
		require.NoError(t, err)
		evB, err := opB.StartServing(0, i, 0)
		require.NoError(t, err)
		assert.Equal(t, opA.CompletionTime(), opB.CompletionTime(), "draw %d", i)
		assert.Equal(t, evA, evB)

		_, err = opA.FinishServing(opA.CompletionTime())
		require.NoError(t, err)
		_, err = opB.FinishServing(opB.CompletionTime())
		require.NoError(t, err)
	}
}

func TestOperator_Reset_RewindsRNG(t *testing.T) {
	op := NewOperator(0, 3.0, 5)
	_, err := op.StartServing(0, 0, 0)
	require.NoError(t, err)
	first := op.CompletionTime()

	op.Reset()
	assert.False(t, op.Busy())
	assert.Equal(t, 0, op.ProcessedCount())

	_, err = op.StartServing(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, first, op.CompletionTime())
}
