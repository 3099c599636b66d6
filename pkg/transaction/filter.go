package transaction

import "time"

// FilterByDateRange keeps transactions dated within [start, end of end's day]. If either bound is zero
// the collection is returned unfiltered.
func FilterByDateRange(transactions []Transaction, start, end time.Time) []Transaction {
	if start.IsZero() || end.IsZero() {
		return transactions
	}
	end = endOfDay(end)
	filtered := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
