package sim

import "github.com/sirupsen/logrus"

// PlacementDispatcher decides where a newly generated order goes: straight to
// an idle operator, into the buffer, or rejected. Exactly one event results
// from every decision.
type PlacementDispatcher struct {
	buffer *OrderBuffer
	stats  *Statistics
}

// NewPlacementDispatcher creates a placement dispatcher over the given
// buffer and statistics sinks.
func NewPlacementDispatcher(buffer *OrderBuffer, stats *Statistics) *PlacementDispatcher {
	return &PlacementDispatcher{buffer: buffer, stats: stats}
}

// findFreeOperator returns the first idle operator in index order, nil when
// all are busy.
func (d *PlacementDispatcher) findFreeOperator(operators []*Operator) *Operator {
	for _, op := range operators {
		if !op.Busy() {
			return op
		}
	}
	return nil
}

// HandleNewOrder routes one generated order:
//
//  1. first idle operator in index order, if any — the direct hand-off
//     bypasses the buffer entirely;
//  2. else the buffer's first free slot;
//  3. else rejection — recorded in statistics here, at emission time, and the
//     order is discarded.
func (d *PlacementDispatcher) HandleNewOrder(operators []*Operator, now float64, restaurantID, orderID int, details string) Event {
	if op := d.findFreeOperator(operators); op != nil {
		ev := newEvent(EventOrderToOperator, now)
		ev.RestaurantID = restaurantID
		ev.OrderID = orderID
		ev.OperatorID = op.ID()
		ev.Details = details
		return ev
	}

	if pos, ok := d.buffer.TryAdmit(restaurantID, orderID, now, details); ok {
		logrus.Debugf("[t=%.3f] buffered r%d/o%d at slot %d", now, restaurantID, orderID, pos)
		ev := newEvent(EventOrderToBuffer, now)
		ev.RestaurantID = restaurantID
		ev.OrderID = orderID
		ev.BufferPosition = pos
		ev.Details = details
		return ev
	}

	d.stats.OrderRejected(restaurantID)
	logrus.Debugf("[t=%.3f] rejected r%d/o%d, buffer full", now, restaurantID, orderID)
	ev := newEvent(EventOrderRejected, now)
	ev.RestaurantID = restaurantID
	ev.OrderID = orderID
	return ev
}
