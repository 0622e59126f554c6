package trace

// Record captures one processed event. Fields mirror the engine's event
// payload; comparable so whole traces can be checked for equality.
type Record struct {
	Step           int
	Kind           string
	Time           float64
	RestaurantID   int
	OrderID        int
	OperatorID     int
	BufferPosition int
	WaitTime       float64
}
