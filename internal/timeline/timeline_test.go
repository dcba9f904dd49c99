package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintpulse/internal/domain"
)

var now = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func overdueFinding(itemID string) domain.RiskFinding {
	return domain.RiskFinding{ItemID: itemID, Kind: domain.FindingOverdueOpen, Severity: domain.SeverityRed}
}

func TestVerdictMissed(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "1", Status: domain.StatusInProgress, DueDate: date(2026, 8, 31)},
		{ID: "2", Status: domain.StatusNotStarted, DueDate: date(2026, 9, 6)},
	}
	findings := []domain.RiskFinding{
		overdueFinding("1"),
		{ItemID: "2", Kind: domain.FindingMissingOwner, Severity: domain.SeverityRed},
	}

	verdict := Aggregate(items, findings, now)

	assert.Equal(t, domain.VerdictMissed, verdict.Status)
	assert.Equal(t, []string{"1"}, verdict.MissedItems)
}

func TestVerdictOngoing(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "3", Status: domain.StatusInProgress, DueDate: date(2026, 9, 3)},
	}
	findings := []domain.RiskFinding{
		{ItemID: "3", Kind: domain.FindingNearDue, Severity: domain.SeverityYellow},
	}

	verdict := Aggregate(items, findings, now)

	assert.Equal(t, domain.VerdictOngoing, verdict.Status)
	assert.Empty(t, verdict.MissedItems)
}

func TestVerdictMetWhenAllDone(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "1", Status: domain.StatusDone, DueDate: date(2026, 8, 25)},
		{ID: "2", Status: domain.StatusDone, DueDate: date(2026, 8, 28)},
	}

	verdict := Aggregate(items, nil, now)

	assert.Equal(t, domain.VerdictMet, verdict.Status)
	assert.Empty(t, verdict.MissedItems)
}

// A miss contributor dominates ongoing contributors.
func TestMissedBeatsOngoing(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "1", Status: domain.StatusInProgress, DueDate: date(2026, 8, 20)},
		{ID: "2", Status: domain.StatusInProgress, DueDate: date(2026, 9, 10)},
	}

	verdict := Aggregate(items, []domain.RiskFinding{overdueFinding("1")}, now)
	assert.Equal(t, domain.VerdictMissed, verdict.Status)
}

func TestMissedOrdering(t *testing.T) {
	// 20 has the earliest due date, 9 and 10 tie on due date and break
	// numerically, 30 has no due date and sorts last.
	items := []domain.SprintItem{
		{ID: "30", Status: domain.StatusInProgress},
		{ID: "10", Status: domain.StatusInProgress, DueDate: date(2026, 8, 25)},
		{ID: "9", Status: domain.StatusInProgress, DueDate: date(2026, 8, 25)},
		{ID: "20", Status: domain.StatusNotStarted, DueDate: date(2026, 8, 20)},
	}
	findings := []domain.RiskFinding{
		overdueFinding("30"),
		overdueFinding("10"),
		overdueFinding("9"),
		overdueFinding("20"),
	}

	verdict := Aggregate(items, findings, now)

	require.Equal(t, domain.VerdictMissed, verdict.Status)
	assert.Equal(t, []string{"20", "9", "10", "30"}, verdict.MissedItems)
}

// Aggregation must be bit-identical across repeated calls on the same input.
func TestAggregateIsDeterministic(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "5", Status: domain.StatusInProgress, DueDate: date(2026, 8, 25)},
		{ID: "3", Status: domain.StatusInProgress, DueDate: date(2026, 8, 25)},
		{ID: "4", Status: domain.StatusInProgress, DueDate: date(2026, 8, 24)},
	}
	findings := []domain.RiskFinding{
		overdueFinding("5"),
		overdueFinding("3"),
		overdueFinding("4"),
	}

	first := Aggregate(items, findings, now)
	second := Aggregate(items, findings, now)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"4", "3", "5"}, first.MissedItems)
}

func TestDueTodayIsNotOngoing(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "1", Status: domain.StatusInProgress, DueDate: date(2026, 9, 1)},
	}

	verdict := Aggregate(items, nil, now)
	assert.Equal(t, domain.VerdictMet, verdict.Status)
}
