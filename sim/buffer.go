package sim

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidPosition reports a removal at an empty or out-of-range slot.
// It indicates a caller bug and is never swallowed by the engine.
var ErrInvalidPosition = errors.New("invalid buffer position")

// OrderBuffer is a fixed-capacity holding area for orders awaiting an
// operator. Occupied slots are always the lowest-indexed ones: admission
// fills the first free slot and removal shifts every subsequent slot left,
// so the buffer behaves as a dense, left-packed array.
type OrderBuffer struct {
	capacity int
	slots    []*Order
	size     int
}

// NewOrderBuffer creates an empty buffer with the given capacity.
func NewOrderBuffer(capacity int) *OrderBuffer {
	if capacity <= 0 {
		panic(fmt.Sprintf("buffer capacity must be positive, got %d", capacity))
	}
	return &OrderBuffer{
		capacity: capacity,
		slots:    make([]*Order, capacity),
	}
}

// TryAdmit inserts a new order into the first free slot and returns its
// position. Returns ok=false when the buffer is full; the buffer is left
// unchanged and the caller owns the rejection accounting.
func (b *OrderBuffer) TryAdmit(restaurantID, orderID int, now float64, details string) (int, bool) {
	return b.Admit(Order{
		RestaurantID: restaurantID,
		OrderID:      orderID,
		Timestamp:    now,
		Details:      details,
	})
}

// Admit inserts an existing order, preserving its original arrival timestamp.
func (b *OrderBuffer) Admit(order Order) (int, bool) {
	if b.size == b.capacity {
		return -1, false
	}
	// Left-packed invariant: the first free slot is slots[size].
	pos := b.size
	o := order
	b.slots[pos] = &o
	b.size++
	return pos, true
}

// RemoveAt removes the order at the given position and shifts every
// subsequent slot left by one, leaving the last slot empty. Positions cached
// before this call are stale afterwards.
func (b *OrderBuffer) RemoveAt(position int) (Order, error) {
	if position < 0 || position >= b.capacity || b.slots[position] == nil {
		return Order{}, fmt.Errorf("%w: %d (size %d, capacity %d)",
			ErrInvalidPosition, position, b.size, b.capacity)
	}
	removed := *b.slots[position]
	copy(b.slots[position:], b.slots[position+1:])
	b.slots[b.capacity-1] = nil
	b.size--
	return removed, nil
}

// Find returns the current position of the order identified by
// (restaurantID, orderID), or ok=false when it is not buffered.
func (b *OrderBuffer) Find(restaurantID, orderID int) (int, bool) {
	for i := 0; i < b.size; i++ {
		if b.slots[i].RestaurantID == restaurantID && b.slots[i].OrderID == orderID {
			return i, true
		}
	}
	return -1, false
}

// OrdersOfRestaurant returns the buffered orders of one restaurant in slot
// order, each paired with its current position.
func (b *OrderBuffer) OrdersOfRestaurant(restaurantID int) []BufferedOrder {
	var result []BufferedOrder
	for i := 0; i < b.size; i++ {
		if b.slots[i].RestaurantID == restaurantID {
			result = append(result, BufferedOrder{Position: i, Order: *b.slots[i]})
		}
	}
	return result
}

// Restaurants returns the distinct restaurant ids present in the buffer,
// in ascending order.
func (b *OrderBuffer) Restaurants() []int {
	seen := make(map[int]bool)
	var ids []int
	for i := 0; i < b.size; i++ {
		id := b.slots[i].RestaurantID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// IsFull reports whether every slot is occupied.
func (b *OrderBuffer) IsFull() bool { return b.size == b.capacity }

// IsEmpty reports whether no slot is occupied.
func (b *OrderBuffer) IsEmpty() bool { return b.size == 0 }

// Size returns the number of occupied slots.
func (b *OrderBuffer) Size() int { return b.size }

// Capacity returns the total number of slots.
func (b *OrderBuffer) Capacity() int { return b.capacity }

// Clear resets the buffer to all-empty.
func (b *OrderBuffer) Clear() {
	for i := range b.slots {
		b.slots[i] = nil
	}
	b.size = 0
}

// Slots returns a copy of the slot layout, nil for empty slots.
func (b *OrderBuffer) Slots() []*Order {
	out := make([]*Order, b.capacity)
	for i, slot := range b.slots {
		if slot != nil {
			o := *slot
			out[i] = &o
		}
	}
	return out
}
