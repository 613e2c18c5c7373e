package content

import "time"

// SplitEvents partitions events into those on or after now and those before
// it, preserving order.
func SplitEvents(events []Event, now time.Time) (upcoming, past []Event) {
	for _, e := range events {
		if e.Date.Before(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}
