package prune

import (
	"fmt"
	"time"
)

// Granularity is one retention tier of the policy.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// PeriodKey maps a timestamp to the calendar bucket it belongs to at this
// granularity. Timestamps are normalized to UTC first so bucket boundaries
// do not depend on the offset an archive name was written with. Keys are
// zero-padded, so their string order equals chronological order.
//
// Weekly buckets follow ISO 8601: weeks start on Monday and week 1 is the
// week containing the year's first Thursday, e.g. "2024-W01".
func (g Granularity) PeriodKey(t time.Time) string {
	u := t.UTC()
	switch g {
	case Daily:
		return u.Format("2006-01-02")
	case Weekly:
		year, week := u.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return u.Format("2006-01")
	case Yearly:
		return u.Format("2006")
	}
	panic("prune: unknown granularity")
}

// bucketize groups archives by period key. Periods without archives do not
// appear in the map.
func bucketize(archives []Archive, g Granularity) map[string][]Archive {
	buckets := make(map[string][]Archive)
	for _, a := range archives {
		key := g.PeriodKey(a.Time)
		buckets[key] = append(buckets[key], a)
	}
	return buckets
}
