// Package trace records the sequence of processed simulation events.
//
// A trace is the run's canonical artifact: two runs with the same seed and
// configuration must produce equal traces, and the summary gives the CLI its
// end-of-run report without the engine knowing how it is presented.
package trace

// Trace collects one record per processed event, in processing order.
type Trace struct {
	records []Record
}

// New creates an empty trace.
func New() *Trace {
	return &Trace{records: make([]Record, 0)}
}

// Append adds a record. Records arrive in processing order and are never
// reordered or dropped.
func (t *Trace) Append(r Record) {
	t.records = append(t.records, r)
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	return len(t.records)
}

// Records returns the recorded events in processing order. The returned
// slice is the trace's internal storage; callers must not modify it.
func (t *Trace) Records() []Record {
	return t.records
}

// Equal reports whether two traces recorded identical event sequences.
func Equal(a, b *Trace) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.records {
		if a.records[i] != b.records[i] {
			return false
		}
	}
	return true
}
