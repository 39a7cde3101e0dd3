package attendance

// Summary aggregates counters over a set of records.
type Summary struct {
	Subjects   int
	Attended   int
	Total      int
	Missed     int
	Percentage int
}

// Summarize sums the counters of records. The overall percentage uses the
// same rounding rule as a single record.
func Summarize(records []Record) Summary {
	s := Summary{Subjects: len(records)}
	for _, r := range records {
		s.Attended += r.Attended
		s.Total += r.Total
	}
	s.Missed = s.Total - s.Attended
	s.Percentage = Percentage(s.Attended, s.Total)
	return s
}
