package attendance

import (
	"sort"
	"time"

	"rollcall/pkg/contracts/domain"
)

// Aggregate folds parsed documents into per-member attendance history.
// It is built incrementally via Fold and becomes a read-only source of
// report views once folding is done. Folding the same record twice is
// idempotent: presence is keyed by (member, date).
type Aggregate struct {
	normalizer *Normalizer

	order   []string
	display map[string]string
	dates   map[string]map[time.Time]bool
	period  map[time.Time]bool
}

// NewAggregate creates an empty aggregate using the given normalizer.
func NewAggregate(n *Normalizer) *Aggregate {
	return &Aggregate{
		normalizer: n,
		display:    make(map[string]string),
		dates:      make(map[string]map[time.Time]bool),
		period:     make(map[time.Time]bool),
	}
}

// Fold adds one document's member list to the aggregate. The document
// date always joins the reporting period, even when the name list is
// empty: a meeting with zero recorded attendees is still a meeting.
// Names normalizing to the empty key are discarded.
func (a *Aggregate) Fold(rec domain.RawRecord) {
	a.period[rec.Date] = true

	for _, raw := range rec.Names {
		key := a.normalizer.Normalize(raw)
		if key == "" {
			continue
		}
		if _, seen := a.dates[key]; !seen {
			a.dates[key] = make(map[time.Time]bool)
			a.order = append(a.order, key)
			a.display[key] = a.normalizer.Display(key, raw)
		}
		a.dates[key][rec.Date] = true
	}
}

// Dates returns the member's sorted distinct attendance dates.
func (a *Aggregate) Dates(key string) []time.Time {
	set := a.dates[key]
	dates := make([]time.Time, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Period returns the full set of distinct document dates folded so
// far, sorted ascending.
func (a *Aggregate) Period() []time.Time {
	period := make([]time.Time, 0, len(a.period))
	for d := range a.period {
		period = append(period, d)
	}
	sort.Slice(period, func(i, j int) bool { return period[i].Before(period[j]) })
	return period
}

// MemberCount returns the number of distinct members seen.
func (a *Aggregate) MemberCount() int { return len(a.order) }

// Views builds the report view(s) for a request scope. ScopeBoth
// returns the all-members view followed by the officers view, both
// derived from the same underlying aggregate so their counts always
// agree. Other scopes return a single view.
func (a *Aggregate) Views(scope domain.Scope, officers *OfficerSet, generatedAt time.Time) []domain.Report {
	switch scope {
	case domain.ScopeBoth:
		return []domain.Report{
			a.view(domain.ScopeAll, officers, generatedAt),
			a.view(domain.ScopeOfficers, officers, generatedAt),
		}
	case domain.ScopeOfficers:
		return []domain.Report{a.view(domain.ScopeOfficers, officers, generatedAt)}
	default:
		return []domain.Report{a.view(domain.ScopeAll, officers, generatedAt)}
	}
}

func (a *Aggregate) view(scope domain.Scope, officers *OfficerSet, generatedAt time.Time) domain.Report {
	report := domain.Report{
		Scope:       scope,
		Period:      a.Period(),
		GeneratedAt: generatedAt,
	}

	if scope == domain.ScopeOfficers {
		// Officers are always listed in roster order, absentees
		// included with a zero count.
		for _, key := range officers.Keys() {
			dates := a.Dates(key)
			report.Members = append(report.Members, domain.MemberAttendance{
				Key:     key,
				Display: officers.DisplayName(key),
				Count:   len(dates),
				Dates:   dates,
			})
		}
		return report
	}

	for _, key := range a.order {
		dates := a.Dates(key)
		report.Members = append(report.Members, domain.MemberAttendance{
			Key:     key,
			Display: a.display[key],
			Count:   len(dates),
			Dates:   dates,
		})
	}
	return report
}
