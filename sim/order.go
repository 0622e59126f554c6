package sim

import "fmt"

// Order is an immutable record of a single order. It is owned by whichever
// container currently holds it: a buffer slot or an in-flight operator.
type Order struct {
	RestaurantID int
	OrderID      int
	Timestamp    float64 // arrival time
	Details      string
}

func (o Order) String() string {
	return fmt.Sprintf("order r%d/o%d t=%.3f", o.RestaurantID, o.OrderID, o.Timestamp)
}

// BufferedOrder pairs an order with the buffer slot it occupied when scanned.
// Positions go stale as soon as a lower slot is removed; resolve them only at
// the moment of use.
type BufferedOrder struct {
	Position int
	Order    Order
}
