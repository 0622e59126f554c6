package trace

// Summary condenses a trace for end-of-run reporting.
type Summary struct {
	Steps   int
	EndTime float64
	ByKind  map[string]int
}

// Summarize counts processed events by kind and notes the final event time.
func (t *Trace) Summarize() Summary {
	s := Summary{ByKind: make(map[string]int)}
	s.Steps = len(t.records)
	for _, r := range t.records {
		s.ByKind[r.Kind]++
		if r.Time > s.EndTime {
			s.EndTime = r.Time
		}
	}
	return s
}
