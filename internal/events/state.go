package events

// State is the aggregate view derived from the event stream. Buckets
// hold the raw event payloads enriched with the event id and timestamp.
type State struct {
	ActiveHolds    []map[string]any `json:"active_holds"`
	RecentBookings []map[string]any `json:"recent_bookings"`
	PriceChanges   []map[string]any `json:"price_changes"`
	SearchQueries  []map[string]any `json:"search_queries"`
	Cancellations  []map[string]any `json:"cancellations"`
}

// Reduce folds one event into the state and returns the successor.
// It never mutates its input: every touched bucket is rebuilt, so
// snapshots taken earlier stay stable.
func Reduce(s State, e Event) State {
	switch e.Name {
	case Hold:
		s.ActiveHolds = appended(s.ActiveHolds, stateEntry(e))
	case Booked:
		s.RecentBookings = appended(s.RecentBookings, stateEntry(e))
		s.ActiveHolds = withoutHold(s.ActiveHolds, e.Payload["hold_id"])
	case Cancelled:
		s.Cancellations = appended(s.Cancellations, stateEntry(e))
	case PriceChanged:
		s.PriceChanges = appended(s.PriceChanges, stateEntry(e))
	case Search:
		s.SearchQueries = appended(s.SearchQueries, stateEntry(e))
	}
	return s
}

func stateEntry(e Event) map[string]any {
	entry := make(map[string]any, len(e.Payload)+2)
	for k, v := range e.Payload {
		entry[k] = v
	}
	entry["event_id"] = e.ID
	entry["timestamp"] = e.TS
	return entry
}

func appended(bucket []map[string]any, entry map[string]any) []map[string]any {
	out := make([]map[string]any, len(bucket), len(bucket)+1)
	copy(out, bucket)
	return append(out, entry)
}

func withoutHold(holds []map[string]any, holdID any) []map[string]any {
	kept := make([]map[string]any, 0, len(holds))
	for _, h := range holds {
		if h["id"] == holdID {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}
