package sim

import "github.com/sirupsen/logrus"

// SelectionDispatcher picks which buffered order is served next under the
// batched-by-restaurant discipline: the buffered backlog of the lowest
// restaurant id present is loaded as the current "package" and drained
// completely before any other restaurant's orders are considered. Orders of
// the package restaurant that arrive after the package was filled do not
// jump the queue; they wait for a later package.
type SelectionDispatcher struct {
	buffer            *OrderBuffer
	packageRestaurant int // -1 when no package is in progress
	packageOrders     []BufferedOrder
}

// NewSelectionDispatcher creates a selection dispatcher over the given buffer.
func NewSelectionDispatcher(buffer *OrderBuffer) *SelectionDispatcher {
	return &SelectionDispatcher{buffer: buffer, packageRestaurant: -1}
}

// refill loads the next package: all buffered orders of the lowest
// restaurant id present, in slot order.
func (d *SelectionDispatcher) refill() {
	restaurants := d.buffer.Restaurants()
	if len(restaurants) == 0 {
		d.packageRestaurant = -1
		d.packageOrders = nil
		return
	}
	d.packageRestaurant = restaurants[0]
	d.packageOrders = d.buffer.OrdersOfRestaurant(d.packageRestaurant)
	logrus.Debugf("selection package: restaurant %d, %d orders",
		d.packageRestaurant, len(d.packageOrders))
}

// SelectNext returns the ORDER_SELECTED event for the next order to serve,
// or ok=false when nothing is buffered. The event's wait time is measured
// from the order's original arrival. Positions carried in the returned event
// reflect the package-fill scan and may be stale by the time the event is
// handled; consumers must re-resolve them against the buffer.
func (d *SelectionDispatcher) SelectNext(now float64) (Event, bool) {
	if d.buffer.IsEmpty() {
		d.packageRestaurant = -1
		d.packageOrders = nil
		return Event{}, false
	}

	if len(d.packageOrders) == 0 {
		d.refill()
	}
	if len(d.packageOrders) == 0 {
		return Event{}, false
	}

	next := d.packageOrders[0]
	d.packageOrders = d.packageOrders[1:]

	ev := newEvent(EventOrderSelected, now)
	ev.RestaurantID = next.Order.RestaurantID
	ev.OrderID = next.Order.OrderID
	ev.BufferPosition = next.Position
	ev.WaitTime = now - next.Order.Timestamp
	return ev, true
}

// PackageInfo returns the restaurant of the package in progress and how many
// of its orders remain, (-1, 0) when no package is in progress.
func (d *SelectionDispatcher) PackageInfo() (restaurantID, remaining int) {
	if d.packageRestaurant < 0 {
		return -1, 0
	}
	return d.packageRestaurant, len(d.packageOrders)
}

// Reset clears the package state.
func (d *SelectionDispatcher) Reset() {
	d.packageRestaurant = -1
	d.packageOrders = nil
}
