package sim

// RestaurantStats aggregates per-restaurant lifecycle counters and timers.
type RestaurantStats struct {
	Generated        int
	Processed        int
	Rejected         int
	TotalWaitTime    float64
	TotalProcessTime float64
}

// Statistics aggregates counters for final reporting. Counters are mutated
// exactly once per corresponding lifecycle transition and never decremented
// except by Reset. All rate accessors return 0 when their denominator is 0.
type Statistics struct {
	restaurants    []RestaurantStats
	totalOrders    int
	totalProcessed int
	totalRejected  int
}

// NewStatistics creates zeroed statistics for numRestaurants restaurants.
func NewStatistics(numRestaurants int) *Statistics {
	return &Statistics{restaurants: make([]RestaurantStats, numRestaurants)}
}

// OrderGenerated records a new order from the given restaurant.
func (s *Statistics) OrderGenerated(restaurantID int) {
	s.restaurants[restaurantID].Generated++
	s.totalOrders++
}

// OrderProcessed records an order entering service, with the time it waited
// in the buffer (0 for direct hand-offs) and its sampled processing time.
func (s *Statistics) OrderProcessed(restaurantID int, waitTime, processTime float64) {
	s.restaurants[restaurantID].Processed++
	s.restaurants[restaurantID].TotalWaitTime += waitTime
	s.restaurants[restaurantID].TotalProcessTime += processTime
	s.totalProcessed++
}

// OrderRejected records an order discarded because the buffer was full.
func (s *Statistics) OrderRejected(restaurantID int) {
	s.restaurants[restaurantID].Rejected++
	s.totalRejected++
}

// RejectionRate returns totalRejected / totalOrders.
func (s *Statistics) RejectionRate() float64 {
	if s.totalOrders == 0 {
		return 0
	}
	return float64(s.totalRejected) / float64(s.totalOrders)
}

// RestaurantRejectionRate returns one restaurant's rejected / generated.
func (s *Statistics) RestaurantRejectionRate(restaurantID int) float64 {
	if restaurantID < 0 || restaurantID >= len(s.restaurants) {
		return 0
	}
	st := s.restaurants[restaurantID]
	if st.Generated == 0 {
		return 0
	}
	return float64(st.Rejected) / float64(st.Generated)
}

// AvgWaitTime returns one restaurant's mean buffer wait per processed order.
func (s *Statistics) AvgWaitTime(restaurantID int) float64 {
	if restaurantID < 0 || restaurantID >= len(s.restaurants) {
		return 0
	}
	st := s.restaurants[restaurantID]
	if st.Processed == 0 {
		return 0
	}
	return st.TotalWaitTime / float64(st.Processed)
}

// AvgProcessTime returns one restaurant's mean processing time per processed order.
func (s *Statistics) AvgProcessTime(restaurantID int) float64 {
	if restaurantID < 0 || restaurantID >= len(s.restaurants) {
		return 0
	}
	st := s.restaurants[restaurantID]
	if st.Processed == 0 {
		return 0
	}
	return st.TotalProcessTime / float64(st.Processed)
}

// TotalOrders returns the number of orders generated across all restaurants.
func (s *Statistics) TotalOrders() int { return s.totalOrders }

// TotalProcessed returns the number of orders that entered service.
func (s *Statistics) TotalProcessed() int { return s.totalProcessed }

// TotalRejected returns the number of rejected orders.
func (s *Statistics) TotalRejected() int { return s.totalRejected }

// NumRestaurants returns the number of restaurants tracked.
func (s *Statistics) NumRestaurants() int { return len(s.restaurants) }

// RestaurantStats returns a copy of one restaurant's counters.
func (s *Statistics) RestaurantStats(restaurantID int) RestaurantStats {
	if restaurantID < 0 || restaurantID >= len(s.restaurants) {
		return RestaurantStats{}
	}
	return s.restaurants[restaurantID]
}

// Reset zeroes every counter.
func (s *Statistics) Reset() {
	for i := range s.restaurants {
		s.restaurants[i] = RestaurantStats{}
	}
	s.totalOrders = 0
	s.totalProcessed = 0
	s.totalRejected = 0
}
