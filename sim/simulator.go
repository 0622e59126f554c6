package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/delivery-sim/delivery-sim/sim/trace"
)

// OperatorSnapshot is a read-only view of one operator's state.
type OperatorSnapshot struct {
	OperatorID     int
	Busy           bool
	RestaurantID   int // -1 when idle
	OrderID        int // -1 when idle
	CompletionTime float64
	ProcessedCount int
}

// SourceSnapshot is a read-only view of one restaurant source's state.
type SourceSnapshot struct {
	RestaurantID       int
	Interval           float64
	GeneratedCount     int
	NextGenerationTime float64
}

// Simulator owns every engine component and drives the event loop. All state
// lives in the components; the simulator itself only tracks the current time
// (monotonically non-decreasing, set to the time of the most recently popped
// event) and the step count.
type Simulator struct {
	cfg Config

	sources   []*RestaurantSource
	operators []*Operator
	buffer    *OrderBuffer
	stats     *Statistics
	placement *PlacementDispatcher
	selection *SelectionDispatcher
	calendar  *Calendar

	currentTime float64
	horizon     float64
	stepCount   int

	trace *trace.Trace
}

// NewSimulator builds a simulator from a validated configuration. Each
// operator and source gets its own RNG stream derived from the scenario seed.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(SimulationKey(cfg.Seed))

	s := &Simulator{
		cfg:    cfg,
		buffer: NewOrderBuffer(cfg.BufferCapacity),
		stats:  NewStatistics(len(cfg.Restaurants)),
	}
	for i, rc := range cfg.Restaurants {
		s.sources = append(s.sources, NewRestaurantSource(i, rc.Interval, rng.SeedFor(SubsystemSource(i))))
	}
	for i, oc := range cfg.Operators {
		s.operators = append(s.operators, NewOperator(i, oc.ProcessingMean, rng.SeedFor(SubsystemOperator(i))))
	}
	s.placement = NewPlacementDispatcher(s.buffer, s.stats)
	s.selection = NewSelectionDispatcher(s.buffer)
	s.calendar = NewCalendar()
	s.horizon = cfg.Horizon
	return s, nil
}

// AttachTrace makes the simulator record every processed event into t.
// Pass nil to stop recording.
func (s *Simulator) AttachTrace(t *trace.Trace) {
	s.trace = t
}

// InitializeSimulation resets every component to its zero state and seeds
// the calendar with one ORDER_GENERATED per restaurant at time 0.
func (s *Simulator) InitializeSimulation(horizon float64) {
	s.currentTime = 0
	s.stepCount = 0
	s.horizon = horizon

	s.stats.Reset()
	s.buffer.Clear()
	s.selection.Reset()
	for _, op := range s.operators {
		op.Reset()
	}
	for _, src := range s.sources {
		src.Reset()
	}
	s.calendar = NewCalendar()

	for _, src := range s.sources {
		s.calendar.Schedule(src.GenerateNext())
	}
	logrus.Infof("simulation initialized: %d restaurants, %d operators, buffer %d, horizon %g",
		len(s.sources), len(s.operators), s.buffer.Capacity(), horizon)
}

// Step pops and processes the earliest event. Returns false when the
// calendar is empty, the normal termination signal.
func (s *Simulator) Step() bool {
	ev, ok := s.calendar.PopEarliest()
	if !ok {
		return false
	}

	s.currentTime = ev.Time
	s.stepCount++
	logrus.Debugf("[t=%8.3f] step %d: %s", s.currentTime, s.stepCount, ev)

	if s.trace != nil {
		s.trace.Append(trace.Record{
			Step:           s.stepCount,
			Kind:           ev.Kind.String(),
			Time:           ev.Time,
			RestaurantID:   ev.RestaurantID,
			OrderID:        ev.OrderID,
			OperatorID:     ev.OperatorID,
			BufferPosition: ev.BufferPosition,
			WaitTime:       ev.WaitTime,
		})
	}

	switch ev.Kind {
	case EventOrderGenerated:
		s.handleOrderGenerated(ev)
	case EventOrderToOperator:
		s.handleOrderToOperator(ev)
	case EventOrderToBuffer:
		s.handleOrderToBuffer(ev)
	case EventOrderSelected:
		s.handleOrderSelected(ev)
	case EventOperatorFree:
		s.handleOperatorFree(ev)
	case EventOrderRejected, EventDeliveryCoordinationStart:
		// Accounted for at emission time; informational here.
	default:
		logrus.Panicf("[t=%.3f] unknown event kind %d", s.currentTime, int(ev.Kind))
	}
	return true
}

// RunAuto steps the simulation until the calendar drains or the next event
// lies beyond the horizon.
func (s *Simulator) RunAuto(horizon float64) {
	s.horizon = horizon
	for {
		next, ok := s.calendar.Peek()
		if !ok || next.Time > horizon {
			break
		}
		s.Step()
	}
	logrus.Infof("[t=%8.3f] simulation ended after %d steps", s.currentTime, s.stepCount)
}

// handleOrderGenerated routes the new order through the placement dispatcher
// and schedules the restaurant's next arrival.
func (s *Simulator) handleOrderGenerated(ev Event) {
	s.stats.OrderGenerated(ev.RestaurantID)

	placed := s.placement.HandleNewOrder(s.operators, s.currentTime, ev.RestaurantID, ev.OrderID, ev.Details)
	s.calendar.Schedule(placed)

	s.calendar.Schedule(s.sources[ev.RestaurantID].GenerateNext())
}

// handleOrderToOperator starts service on the operator chosen at placement
// time and schedules its completion.
func (s *Simulator) handleOrderToOperator(ev Event) {
	op := s.operators[ev.OperatorID]
	s.startServing(op, ev.RestaurantID, ev.OrderID, 0)
}

// handleOrderToBuffer re-checks for an idle operator: one may have freed up
// between admission and this event, and a buffered order must not sit idle
// while an operator does.
func (s *Simulator) handleOrderToBuffer(ev Event) {
	if s.findFreeOperator() == nil {
		return
	}
	if sel, ok := s.selection.SelectNext(s.currentTime); ok {
		s.calendar.Schedule(sel)
	}
}

// handleOrderSelected removes the selected order from the buffer and starts
// it on a free operator. The position carried by the event is re-resolved
// against the buffer: removals since the package was filled may have shifted
// it.
func (s *Simulator) handleOrderSelected(ev Event) {
	pos, ok := s.buffer.Find(ev.RestaurantID, ev.OrderID)
	if !ok {
		logrus.Panicf("[t=%.3f] selected order r%d/o%d is not in the buffer",
			s.currentTime, ev.RestaurantID, ev.OrderID)
	}
	order, err := s.buffer.RemoveAt(pos)
	if err != nil {
		logrus.Panicf("[t=%.3f] remove selected order at %d: %v", s.currentTime, pos, err)
	}

	op := s.findFreeOperator()
	if op == nil {
		// The operator that prompted this selection was taken by an earlier
		// same-time event. Put the order back with its original arrival time;
		// the next OPERATOR_FREE will select it again.
		s.buffer.Admit(order)
		logrus.Warnf("[t=%.3f] no free operator for selected order %s, re-buffered", s.currentTime, order)
		return
	}
	s.startServing(op, order.RestaurantID, order.OrderID, ev.WaitTime)
}

// handleOperatorFree finishes the operator's current order, then immediately
// asks the selection dispatcher for the next buffered order.
func (s *Simulator) handleOperatorFree(ev Event) {
	op := s.operators[ev.OperatorID]
	if _, err := op.FinishServing(s.currentTime); err != nil {
		logrus.Panicf("[t=%.3f] finish serving on operator %d: %v", s.currentTime, ev.OperatorID, err)
	}
	if sel, ok := s.selection.SelectNext(s.currentTime); ok {
		s.calendar.Schedule(sel)
	}
}

// startServing begins service, schedules the coordination-start event and the
// derived OPERATOR_FREE at the sampled completion time, and records the
// order as processed.
func (s *Simulator) startServing(op *Operator, restaurantID, orderID int, waitTime float64) {
	started, err := op.StartServing(restaurantID, orderID, s.currentTime)
	if err != nil {
		logrus.Panicf("[t=%.3f] start serving r%d/o%d on operator %d: %v",
			s.currentTime, restaurantID, orderID, op.ID(), err)
	}
	s.calendar.Schedule(started)

	free := newEvent(EventOperatorFree, op.CompletionTime())
	free.RestaurantID = restaurantID
	free.OrderID = orderID
	free.OperatorID = op.ID()
	s.calendar.Schedule(free)

	s.stats.OrderProcessed(restaurantID, waitTime, op.CompletionTime()-s.currentTime)
}

// findFreeOperator returns the first idle operator in index order, nil when
// all are busy.
func (s *Simulator) findFreeOperator() *Operator {
	for _, op := range s.operators {
		if !op.Busy() {
			return op
		}
	}
	return nil
}

// Config returns the scenario configuration the simulator was built from.
func (s *Simulator) Config() Config { return s.cfg }

// CurrentTime returns the time of the most recently processed event.
func (s *Simulator) CurrentTime() float64 { return s.currentTime }

// StepCount returns the number of processed events.
func (s *Simulator) StepCount() int { return s.stepCount }

// Horizon returns the configured end of the run.
func (s *Simulator) Horizon() float64 { return s.horizon }

// Stats returns the statistics aggregate.
func (s *Simulator) Stats() *Statistics { return s.stats }

// NumOperators returns the number of operators.
func (s *Simulator) NumOperators() int { return len(s.operators) }

// NumRestaurants returns the number of restaurant sources.
func (s *Simulator) NumRestaurants() int { return len(s.sources) }

// BufferSnapshot returns the buffer's slot layout, nil for empty slots.
func (s *Simulator) BufferSnapshot() []*Order { return s.buffer.Slots() }

// BufferSize returns the number of buffered orders.
func (s *Simulator) BufferSize() int { return s.buffer.Size() }

// NextEventTime returns the time of the earliest pending event,
// ok=false when the calendar is empty.
func (s *Simulator) NextEventTime() (float64, bool) {
	ev, ok := s.calendar.Peek()
	if !ok {
		return 0, false
	}
	return ev.Time, true
}

// CalendarSnapshot returns the pending events in pop order.
func (s *Simulator) CalendarSnapshot() []Event { return s.calendar.Snapshot() }

// PackageInfo returns the selection package in progress: restaurant id and
// remaining order count, (-1, 0) when none.
func (s *Simulator) PackageInfo() (restaurantID, remaining int) {
	return s.selection.PackageInfo()
}

// OperatorSnapshots returns a read-only view of every operator.
func (s *Simulator) OperatorSnapshots() []OperatorSnapshot {
	out := make([]OperatorSnapshot, len(s.operators))
	for i, op := range s.operators {
		restID, ordID, _ := op.CurrentOrder()
		out[i] = OperatorSnapshot{
			OperatorID:     op.ID(),
			Busy:           op.Busy(),
			RestaurantID:   restID,
			OrderID:        ordID,
			CompletionTime: op.CompletionTime(),
			ProcessedCount: op.ProcessedCount(),
		}
	}
	return out
}

// SourceSnapshots returns a read-only view of every restaurant source.
func (s *Simulator) SourceSnapshots() []SourceSnapshot {
	out := make([]SourceSnapshot, len(s.sources))
	for i, src := range s.sources {
		out[i] = SourceSnapshot{
			RestaurantID:       src.RestaurantID(),
			Interval:           src.Interval(),
			GeneratedCount:     src.GeneratedCount(),
			NextGenerationTime: src.NextGenerationTime(),
		}
	}
	return out
}
