package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrOperatorBusy reports StartServing on an already-busy operator.
// ErrOperatorNotBusy reports FinishServing on an idle operator.
// Both indicate a scheduling bug inside the engine: two dispatch paths raced
// on the same operator, which cannot happen in a correct single-threaded run.
// The simulator treats them as fatal.
var (
	ErrOperatorBusy    = errors.New("operator already busy")
	ErrOperatorNotBusy = errors.New("operator not busy")
)

// Operator is the per-operator busy/free state machine. Exactly one of the
// two states holds at any time:
//
//	idle: busy=false, no current order, completionTime=+Inf
//	busy: busy=true, current order set, completionTime finite
//
// Each operator owns its RNG stream so service-time sampling is reproducible
// and independent of every other operator.
type Operator struct {
	id             int
	processingMean float64

	busy           bool
	currentRest    int
	currentOrder   int
	completionTime float64
	processedCount int

	seed int64
	rng  *rand.Rand
}

// NewOperator creates an idle operator with the given exponential service
// mean and a dedicated RNG seeded with seed.
func NewOperator(id int, processingMean float64, seed int64) *Operator {
	op := &Operator{
		id:             id,
		processingMean: processingMean,
		seed:           seed,
	}
	op.Reset()
	return op
}

// StartServing marks the operator busy with the given order, samples an
// exponential processing duration, and returns the resulting
// DELIVERY_COORDINATION_START event. Fails with ErrOperatorBusy when called
// on a busy operator.
func (op *Operator) StartServing(restaurantID, orderID int, now float64) (Event, error) {
	if op.busy {
		return Event{}, fmt.Errorf("%w: operator %d serving r%d/o%d",
			ErrOperatorBusy, op.id, op.currentRest, op.currentOrder)
	}

	// Inverse-transform exponential sampling: -ln(1-U) * mean, U uniform [0,1).
	duration := -math.Log(1-op.rng.Float64()) * op.processingMean

	op.busy = true
	op.currentRest = restaurantID
	op.currentOrder = orderID
	op.completionTime = now + duration
	op.processedCount++

	ev := newEvent(EventDeliveryCoordinationStart, now)
	ev.RestaurantID = restaurantID
	ev.OrderID = orderID
	ev.OperatorID = op.id
	return ev, nil
}

// FinishServing clears the busy state and returns the OPERATOR_FREE event
// carrying the order that was just completed. Fails with ErrOperatorNotBusy
// when called on an idle operator.
func (op *Operator) FinishServing(now float64) (Event, error) {
	if !op.busy {
		return Event{}, fmt.Errorf("%w: operator %d", ErrOperatorNotBusy, op.id)
	}

	ev := newEvent(EventOperatorFree, now)
	ev.RestaurantID = op.currentRest
	ev.OrderID = op.currentOrder
	ev.OperatorID = op.id

	op.busy = false
	op.currentRest = -1
	op.currentOrder = -1
	op.completionTime = math.Inf(1)
	return ev, nil
}

// Reset forces the operator idle, zeroes its processed count, and rewinds its
// RNG stream so a re-initialized run replays identically.
func (op *Operator) Reset() {
	op.busy = false
	op.currentRest = -1
	op.currentOrder = -1
	op.completionTime = math.Inf(1)
	op.processedCount = 0
	op.rng = rand.New(rand.NewSource(op.seed))
}

// ID returns the operator id.
func (op *Operator) ID() int { return op.id }

// Busy reports whether the operator is serving an order.
func (op *Operator) Busy() bool { return op.busy }

// CompletionTime returns the time the current order completes, +Inf when idle.
func (op *Operator) CompletionTime() float64 { return op.completionTime }

// ProcessedCount returns the number of orders this operator has started serving.
func (op *Operator) ProcessedCount() int { return op.processedCount }

// ProcessingMean returns the configured exponential service mean.
func (op *Operator) ProcessingMean() float64 { return op.processingMean }

// CurrentOrder returns the order being served, ok=false when idle.
func (op *Operator) CurrentOrder() (restaurantID, orderID int, ok bool) {
	if !op.busy {
		return -1, -1, false
	}
	return op.currentRest, op.currentOrder, true
}
