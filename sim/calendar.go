package sim

import (
	"container/heap"
	"sort"
)

// calendarEntry wraps an Event with an insertion sequence number for
// deterministic FIFO tie-breaking when timestamps are equal.
type calendarEntry struct {
	event Event
	seq   int64
}

// eventHeap is a min-heap ordered by (Time, kind priority, seq).
// Implements heap.Interface.
type eventHeap []calendarEntry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return entryLess(h[i], h[j])
}

func entryLess(a, b calendarEntry) bool {
	if a.event.Time != b.event.Time {
		return a.event.Time < b.event.Time
	}
	if a.event.Kind.priority() != b.event.Kind.priority() {
		return a.event.Kind.priority() < b.event.Kind.priority()
	}
	return a.seq < b.seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(calendarEntry))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Calendar is the time-ordered queue of pending simulation events.
// Events pop in non-decreasing Time order; equal-time events pop by kind
// priority, then scheduling order, so a run is fully determined by its
// schedule and the total order is deterministic even under ties.
type Calendar struct {
	entries eventHeap
	nextSeq int64
}

// NewCalendar creates an empty calendar.
func NewCalendar() *Calendar {
	c := &Calendar{entries: make(eventHeap, 0)}
	heap.Init(&c.entries)
	return c
}

// Schedule inserts an event into the calendar.
func (c *Calendar) Schedule(ev Event) {
	heap.Push(&c.entries, calendarEntry{event: ev, seq: c.nextSeq})
	c.nextSeq++
}

// PopEarliest removes and returns the event with the smallest time.
// The second return value is false when the calendar is empty, which is
// the normal termination signal, not a fault.
func (c *Calendar) PopEarliest() (Event, bool) {
	if c.entries.Len() == 0 {
		return Event{}, false
	}
	entry := heap.Pop(&c.entries).(calendarEntry)
	return entry.event, true
}

// Peek returns the next event without removing it.
func (c *Calendar) Peek() (Event, bool) {
	if c.entries.Len() == 0 {
		return Event{}, false
	}
	return c.entries[0].event, true
}

// Len returns the number of pending events.
func (c *Calendar) Len() int {
	return c.entries.Len()
}

// Clear drops all pending events. The sequence counter is not reset so that
// entries scheduled after a Clear still order after everything before it.
func (c *Calendar) Clear() {
	c.entries = c.entries[:0]
}

// Snapshot returns the pending events in pop order. The calendar itself is
// left untouched; the copy is for presentation and diagnostics.
func (c *Calendar) Snapshot() []Event {
	entries := make([]calendarEntry, len(c.entries))
	copy(entries, c.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
	events := make([]Event, len(entries))
	for i, entry := range entries {
		events[i] = entry.event
	}
	return events
}
