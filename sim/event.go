package sim

import "fmt"

// EventKind identifies the type of a calendar event.
type EventKind int

const (
	// EventOrderGenerated marks a restaurant source producing a new order.
	EventOrderGenerated EventKind = iota
	// EventOrderToBuffer marks an order admitted into the buffer.
	EventOrderToBuffer
	// EventOrderToOperator marks a direct hand-off to an idle operator,
	// bypassing the buffer entirely.
	EventOrderToOperator
	// EventOrderSelected marks a buffered order chosen by the selection
	// dispatcher for service.
	EventOrderSelected
	// EventDeliveryCoordinationStart marks an operator beginning to
	// coordinate a delivery. Informational only.
	EventDeliveryCoordinationStart
	// EventOperatorFree marks an operator completing its current order.
	EventOperatorFree
	// EventOrderRejected marks an order discarded because the buffer was full.
	EventOrderRejected
)

var eventKindNames = map[EventKind]string{
	EventOrderGenerated:            "ORDER_GENERATED",
	EventOrderToBuffer:             "ORDER_TO_BUFFER",
	EventOrderToOperator:           "ORDER_TO_OPERATOR",
	EventOrderSelected:             "ORDER_SELECTED",
	EventDeliveryCoordinationStart: "DELIVERY_COORDINATION_START",
	EventOperatorFree:              "OPERATOR_FREE",
	EventOrderRejected:             "ORDER_REJECTED",
}

// eventKindPriority orders equal-time events: dispatch-completion events
// resolve before new generations, so an operator picked by a placement or
// selection decision is marked busy before any other same-time decision
// scans for free operators. Lower value pops first.
var eventKindPriority = map[EventKind]int{
	EventOrderSelected:             0,
	EventOrderToOperator:           1,
	EventOrderToBuffer:             2,
	EventDeliveryCoordinationStart: 3,
	EventOperatorFree:              4,
	EventOrderRejected:             5,
	EventOrderGenerated:            6,
}

func (k EventKind) priority() int {
	return eventKindPriority[k]
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an immutable record on the calendar. Each kind uses the subset of
// fields relevant to it; int fields not carried by a kind hold -1.
type Event struct {
	Kind           EventKind
	Time           float64
	RestaurantID   int
	OrderID        int
	OperatorID     int
	BufferPosition int
	WaitTime       float64
	Details        string
}

// newEvent returns an event of the given kind with all id fields unset.
func newEvent(kind EventKind, time float64) Event {
	return Event{
		Kind:           kind,
		Time:           time,
		RestaurantID:   -1,
		OrderID:        -1,
		OperatorID:     -1,
		BufferPosition: -1,
	}
}

func (e Event) String() string {
	switch e.Kind {
	case EventOrderToBuffer, EventOrderSelected:
		return fmt.Sprintf("%s t=%.3f rest=%d order=%d pos=%d",
			e.Kind, e.Time, e.RestaurantID, e.OrderID, e.BufferPosition)
	case EventOrderToOperator, EventDeliveryCoordinationStart, EventOperatorFree:
		return fmt.Sprintf("%s t=%.3f rest=%d order=%d op=%d",
			e.Kind, e.Time, e.RestaurantID, e.OrderID, e.OperatorID)
	default:
		return fmt.Sprintf("%s t=%.3f rest=%d order=%d",
			e.Kind, e.Time, e.RestaurantID, e.OrderID)
	}
}
