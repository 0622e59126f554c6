package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionDispatcher_EmptyBuffer(t *testing.T) {
	b := NewOrderBuffer(3)
	d := NewSelectionDispatcher(b)

	_, ok := d.SelectNext(1.0)
	assert.False(t, ok)

	restID, remaining := d.PackageInfo()
	assert.Equal(t, -1, restID)
	assert.Equal(t, 0, remaining)
}

// TestSelectionDispatcher_LowestRestaurantFirst walks the selection example:
// buffer holding [(0, r1/o1), (1, r2/o0)] with no package in progress picks
// restaurant 1 first and reports the wait since the order's arrival.
func TestSelectionDispatcher_LowestRestaurantFirst(t *testing.T) {
	b := NewOrderBuffer(3)
	d := NewSelectionDispatcher(b)
	b.TryAdmit(2, 0, 2.0, "")
	b.TryAdmit(1, 1, 4.0, "")

	ev, ok := d.SelectNext(10.0)
	require.True(t, ok)
	assert.Equal(t, EventOrderSelected, ev.Kind)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 1, ev.OrderID)
	assert.Equal(t, 1, ev.BufferPosition)
	assert.Equal(t, 6.0, ev.WaitTime)
}

// TestSelectionDispatcher_PackageDrains tests that a package in progress is
// drained completely before a lower restaurant id is considered.
func TestSelectionDispatcher_PackageDrains(t *testing.T) {
	b := NewOrderBuffer(5)
	d := NewSelectionDispatcher(b)
	b.TryAdmit(1, 0, 0, "")
	b.TryAdmit(1, 1, 0, "")

	ev, ok := d.SelectNext(1.0)
	require.True(t, ok)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 0, ev.OrderID)
	removeSelected(t, b, ev)

	// Restaurant 0 arrives mid-drain; the current package still wins.
	b.TryAdmit(0, 0, 1.0, "")

	ev, ok = d.SelectNext(2.0)
	require.True(t, ok)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 1, ev.OrderID)
	removeSelected(t, b, ev)

	// Package exhausted: the refill now picks restaurant 0.
	ev, ok = d.SelectNext(3.0)
	require.True(t, ok)
	assert.Equal(t, 0, ev.RestaurantID)
	assert.Equal(t, 0, ev.OrderID)
}

func TestSelectionDispatcher_SlotOrderWithinPackage(t *testing.T) {
	b := NewOrderBuffer(5)
	d := NewSelectionDispatcher(b)
	b.TryAdmit(2, 0, 0, "")
	b.TryAdmit(1, 3, 0, "")
	b.TryAdmit(1, 1, 0, "")

	ev, ok := d.SelectNext(1.0)
	require.True(t, ok)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 3, ev.OrderID) // slot order, not order-id order
	removeSelected(t, b, ev)

	ev, ok = d.SelectNext(2.0)
	require.True(t, ok)
	assert.Equal(t, 1, ev.RestaurantID)
	assert.Equal(t, 1, ev.OrderID)
}

func TestSelectionDispatcher_PackageInfo(t *testing.T) {
	b := NewOrderBuffer(5)
	d := NewSelectionDispatcher(b)
	b.TryAdmit(4, 0, 0, "")
	b.TryAdmit(4, 1, 0, "")

	_, ok := d.SelectNext(1.0)
	require.True(t, ok)

	restID, remaining := d.PackageInfo()
	assert.Equal(t, 4, restID)
	assert.Equal(t, 1, remaining)
}

func TestSelectionDispatcher_Reset(t *testing.T) {
	b := NewOrderBuffer(5)
	d := NewSelectionDispatcher(b)
	b.TryAdmit(1, 0, 0, "")
	b.TryAdmit(1, 1, 0, "")
	_, ok := d.SelectNext(1.0)
	require.True(t, ok)

	d.Reset()
	restID, remaining := d.PackageInfo()
	assert.Equal(t, -1, restID)
	assert.Equal(t, 0, remaining)
}

// removeSelected mirrors the simulator: a selected order leaves the buffer,
// with its position re-resolved at the moment of use.
func removeSelected(t *testing.T, b *OrderBuffer, ev Event) {
	t.Helper()
	pos, ok := b.Find(ev.RestaurantID, ev.OrderID)
	require.True(t, ok)
	_, err := b.RemoveAt(pos)
	require.NoError(t, err)
}
