package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcall/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestFoldAccumulatesPresence(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))

	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Alice", "Bob"}})
	agg.Fold(domain.RawRecord{Date: day(12), Names: []string{"alice", "Carol"}})

	assert.Equal(t, 3, agg.MemberCount())
	assert.Equal(t, []time.Time{day(5), day(12)}, agg.Dates("alice"))
	assert.Equal(t, []time.Time{day(5)}, agg.Dates("bob"))
	assert.Equal(t, []time.Time{day(12)}, agg.Dates("carol"))
	assert.Equal(t, []time.Time{day(5), day(12)}, agg.Period())
}

func TestFoldDuplicateWithinDocument(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))

	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Alice", "ALICE", "- alice"}})

	assert.Equal(t, 1, agg.MemberCount())
	assert.Equal(t, []time.Time{day(5)}, agg.Dates("alice"))
}

func TestFoldIdempotent(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))
	rec := domain.RawRecord{Date: day(5), Names: []string{"Alice"}}

	agg.Fold(rec)
	agg.Fold(rec)

	assert.Equal(t, []time.Time{day(5)}, agg.Dates("alice"))
	assert.Equal(t, []time.Time{day(5)}, agg.Period())
}

func TestFoldEmptyDocumentExtendsPeriod(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))

	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Alice"}})
	agg.Fold(domain.RawRecord{Date: day(19)})

	assert.Equal(t, []time.Time{day(5), day(19)}, agg.Period())
	assert.Equal(t, 1, agg.MemberCount())
}

func TestFoldAliasesMerge(t *testing.T) {
	agg := NewAggregate(NewNormalizer(map[string]string{"bob": "Robert Smith"}))

	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Bob"}})
	agg.Fold(domain.RawRecord{Date: day(12), Names: []string{"Robert Smith"}})

	assert.Equal(t, 1, agg.MemberCount())
	assert.Equal(t, []time.Time{day(5), day(12)}, agg.Dates("robert smith"))
}

func TestViewsAllFirstAppearanceOrder(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))
	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Carol", "Alice"}})
	agg.Fold(domain.RawRecord{Date: day(12), Names: []string{"Bob", "Alice"}})

	officers := NewOfficerSet(nil, NewNormalizer(nil))
	views := agg.Views(domain.ScopeAll, officers, day(20))
	require.Len(t, views, 1)

	report := views[0]
	assert.Equal(t, domain.ScopeAll, report.Scope)
	require.Len(t, report.Members, 3)
	assert.Equal(t, "carol", report.Members[0].Key)
	assert.Equal(t, "alice", report.Members[1].Key)
	assert.Equal(t, "bob", report.Members[2].Key)
	assert.Equal(t, 2, report.Members[1].Count)
	assert.Equal(t, []time.Time{day(5), day(12)}, report.Period)
}

func TestViewsOfficersRosterOrderWithAbsentees(t *testing.T) {
	n := NewNormalizer(nil)
	agg := NewAggregate(n)
	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Bob", "Dave"}})

	officers := NewOfficerSet([]string{"Alice", "Bob", "Carol"}, n)
	views := agg.Views(domain.ScopeOfficers, officers, day(20))
	require.Len(t, views, 1)

	report := views[0]
	require.Len(t, report.Members, 3)

	// Roster order, absentees included with zero counts
	assert.Equal(t, "Alice", report.Members[0].Display)
	assert.Equal(t, 0, report.Members[0].Count)
	assert.Empty(t, report.Members[0].Dates)

	assert.Equal(t, "Bob", report.Members[1].Display)
	assert.Equal(t, 1, report.Members[1].Count)

	assert.Equal(t, "Carol", report.Members[2].Display)
	assert.Equal(t, 0, report.Members[2].Count)
}

func TestViewsBothAgree(t *testing.T) {
	n := NewNormalizer(nil)
	agg := NewAggregate(n)
	agg.Fold(domain.RawRecord{Date: day(5), Names: []string{"Alice", "Dave"}})
	agg.Fold(domain.RawRecord{Date: day(12), Names: []string{"Alice"}})

	officers := NewOfficerSet([]string{"Alice"}, n)
	views := agg.Views(domain.ScopeBoth, officers, day(20))
	require.Len(t, views, 2)

	all, officerView := views[0], views[1]
	assert.Equal(t, domain.ScopeAll, all.Scope)
	assert.Equal(t, domain.ScopeOfficers, officerView.Scope)

	// The officer's count matches between both views
	assert.Equal(t, 2, all.Members[0].Count)
	assert.Equal(t, 2, officerView.Members[0].Count)
	assert.Equal(t, all.Period, officerView.Period)
}

func TestCountEqualsDates(t *testing.T) {
	agg := NewAggregate(NewNormalizer(nil))
	for d := 1; d <= 9; d += 2 {
		agg.Fold(domain.RawRecord{Date: day(d), Names: []string{"Alice"}})
	}

	views := agg.Views(domain.ScopeAll, NewOfficerSet(nil, NewNormalizer(nil)), day(20))
	member := views[0].Members[0]
	assert.Equal(t, len(member.Dates), member.Count)
	assert.Equal(t, 5, member.Count)
}
