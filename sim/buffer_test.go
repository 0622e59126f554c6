package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBuffer_AdmitFillsLowestSlot(t *testing.T) {
	b := NewOrderBuffer(3)

	pos, ok := b.TryAdmit(1, 0, 1.0, "")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = b.TryAdmit(2, 0, 2.0, "")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	pos, ok = b.TryAdmit(1, 1, 3.0, "")
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	assert.True(t, b.IsFull())
	assert.Equal(t, 3, b.Size())
}

func TestOrderBuffer_AdmitFailsWhenFull(t *testing.T) {
	b := NewOrderBuffer(2)
	b.TryAdmit(0, 0, 0, "")
	b.TryAdmit(0, 1, 0, "")

	_, ok := b.TryAdmit(0, 2, 0, "")
	assert.False(t, ok)
	// Failure leaves the buffer unchanged.
	assert.Equal(t, 2, b.Size())
	slots := b.Slots()
	assert.Equal(t, 0, slots[0].OrderID)
	assert.Equal(t, 1, slots[1].OrderID)
}

func TestOrderBuffer_RemoveAtShiftsLeft(t *testing.T) {
	b := NewOrderBuffer(4)
	b.TryAdmit(1, 0, 0, "")
	b.TryAdmit(2, 0, 0, "")
	b.TryAdmit(3, 0, 0, "")

	removed, err := b.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, 2, removed.RestaurantID)

	slots := b.Slots()
	require.Equal(t, 2, b.Size())
	assert.Equal(t, 1, slots[0].RestaurantID)
	assert.Equal(t, 3, slots[1].RestaurantID) // shifted down from slot 2
	assert.Nil(t, slots[2])
	assert.Nil(t, slots[3])
}

func TestOrderBuffer_RemoveAtInvalidPosition(t *testing.T) {
	b := NewOrderBuffer(3)
	b.TryAdmit(1, 0, 0, "")

	for _, pos := range []int{-1, 3, 1, 2} {
		_, err := b.RemoveAt(pos)
		if !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("RemoveAt(%d) error = %v, want ErrInvalidPosition", pos, err)
		}
	}
	// The failed removals left the order in place.
	assert.Equal(t, 1, b.Size())
}

func TestOrderBuffer_OrdersOfRestaurant(t *testing.T) {
	b := NewOrderBuffer(5)
	b.TryAdmit(1, 0, 1.0, "")
	b.TryAdmit(2, 0, 2.0, "")
	b.TryAdmit(1, 1, 3.0, "")

	got := b.OrdersOfRestaurant(1)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, 0, got[0].Order.OrderID)
	assert.Equal(t, 2, got[1].Position)
	assert.Equal(t, 1, got[1].Order.OrderID)

	assert.Empty(t, b.OrdersOfRestaurant(9))
}

func TestOrderBuffer_Restaurants_Ascending(t *testing.T) {
	b := NewOrderBuffer(5)
	b.TryAdmit(7, 0, 0, "")
	b.TryAdmit(2, 0, 0, "")
	b.TryAdmit(7, 1, 0, "")
	b.TryAdmit(4, 0, 0, "")

	assert.Equal(t, []int{2, 4, 7}, b.Restaurants())
}

func TestOrderBuffer_Find(t *testing.T) {
	b := NewOrderBuffer(3)
	b.TryAdmit(1, 5, 0, "")
	b.TryAdmit(2, 9, 0, "")

	pos, ok := b.Find(2, 9)
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = b.Find(2, 8)
	assert.False(t, ok)

	// Removal shifts the remaining order down; Find tracks it.
	_, err := b.RemoveAt(0)
	require.NoError(t, err)
	pos, ok = b.Find(2, 9)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestOrderBuffer_Clear(t *testing.T) {
	b := NewOrderBuffer(3)
	b.TryAdmit(1, 0, 0, "")
	b.TryAdmit(1, 1, 0, "")
	b.Clear()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Size())
	for i, slot := range b.Slots() {
		assert.Nil(t, slot, "slot %d", i)
	}
}

// TestOrderBuffer_PackingInvariant drives random admissions and removals and
// checks after every operation that occupied slots are exactly the first
// Size() indices.
func TestOrderBuffer_PackingInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewOrderBuffer(8)
	nextID := 0

	checkPacking := func() {
		t.Helper()
		slots := b.Slots()
		for i := 0; i < b.Size(); i++ {
			if slots[i] == nil {
				t.Fatalf("gap at slot %d with size %d", i, b.Size())
			}
		}
		for i := b.Size(); i < b.Capacity(); i++ {
			if slots[i] != nil {
				t.Fatalf("occupied slot %d beyond size %d", i, b.Size())
			}
		}
	}

	for step := 0; step < 500; step++ {
		if rng.Intn(2) == 0 {
			b.TryAdmit(rng.Intn(3), nextID, float64(step), "")
			nextID++
		} else if !b.IsEmpty() {
			_, err := b.RemoveAt(rng.Intn(b.Size()))
			require.NoError(t, err)
		}
		checkPacking()
	}
}
