package sim

import (
	"math/rand"

	"github.com/jaswdr/faker"
)

// RestaurantSource generates a restaurant's deterministic arrival schedule:
// one order every interval, starting at time 0. nextGenerationTime is the
// single source of truth for the schedule and only ever advances by interval.
//
// The interval is configured as a "mean" for symmetry with operator service
// times, but arrivals are intentionally deterministic, not exponential.
type RestaurantSource struct {
	restaurantID       int
	interval           float64
	generatedCount     int
	nextGenerationTime float64

	seed int64
	fake faker.Faker
}

// NewRestaurantSource creates a source for the given restaurant. The seed
// drives the fake order-detail text; the schedule itself has no randomness.
func NewRestaurantSource(restaurantID int, interval float64, seed int64) *RestaurantSource {
	s := &RestaurantSource{
		restaurantID: restaurantID,
		interval:     interval,
		seed:         seed,
	}
	s.Reset()
	return s
}

// GenerateNext returns the next ORDER_GENERATED event at nextGenerationTime
// (not the caller's current time: the schedule is independent of when the
// caller happens to ask), then advances the schedule. The new order's id is
// the running generated count. This call has no failure mode.
func (s *RestaurantSource) GenerateNext() Event {
	ev := newEvent(EventOrderGenerated, s.nextGenerationTime)
	ev.RestaurantID = s.restaurantID
	ev.OrderID = s.generatedCount
	ev.Details = s.fake.Lorem().Sentence(3)

	s.generatedCount++
	s.nextGenerationTime += s.interval
	return ev
}

// Reset rewinds the schedule to time 0 and restarts the detail-text stream
// so a re-initialized run replays identically.
func (s *RestaurantSource) Reset() {
	s.generatedCount = 0
	s.nextGenerationTime = 0
	s.fake = faker.NewWithSeed(rand.NewSource(s.seed))
}

// RestaurantID returns the restaurant id.
func (s *RestaurantSource) RestaurantID() int { return s.restaurantID }

// Interval returns the fixed time between generated orders.
func (s *RestaurantSource) Interval() float64 { return s.interval }

// GeneratedCount returns the number of orders generated so far.
func (s *RestaurantSource) GeneratedCount() int { return s.generatedCount }

// NextGenerationTime returns the time of the next order.
func (s *RestaurantSource) NextGenerationTime() float64 { return s.nextGenerationTime }
