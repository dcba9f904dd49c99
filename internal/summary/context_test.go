package summary

import (
	"context"
	"errors"
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

func testInputs() ([]domain.SprintItem, map[string][]domain.RiskFinding, domain.TimelineVerdict) {
	items := []domain.SprintItem{
		{ID: "1", Title: "Checkout flow", Track: domain.TrackDev, Status: domain.StatusInProgress, Owner: "Alice", DueDate: date(2026, 8, 30)},
		{ID: "2", Title: "Brand refresh", Track: domain.TrackDesign, Status: domain.StatusDone, Owner: "Bob", DueDate: date(2026, 8, 28)},
		{ID: "3", Title: "Pricing page", Track: domain.TrackProduct, Status: domain.StatusNotStarted, DueDate: date(2026, 9, 3)},
	}
	findings := map[string][]domain.RiskFinding{
		"1": {{ItemID: "1", Kind: domain.FindingOverdueOpen, Severity: domain.SeverityRed, Detail: "due 2026-08-30 passed, 2 day(s) overdue"}},
		"3": {
			{ItemID: "3", Kind: domain.FindingMissingOwner, Severity: domain.SeverityRed, Detail: "no owner assigned"},
			{ItemID: "3", Kind: domain.FindingNearDue, Severity: domain.SeverityYellow, Detail: "due 2026-09-03, 2 day(s) left"},
		},
	}
	verdict := domain.TimelineVerdict{Status: domain.VerdictMissed, MissedItems: []string{"1"}}
	return items, findings, verdict
}

func TestBuildContext(t *testing.T) {
	items, findings, verdict := testInputs()

	pc := BuildContext("Sprint 4", items, findings, verdict, now)

	assert.Equal(t, "Sprint 4", pc.Sprint)
	assert.Equal(t, "Missed", pc.Verdict)
	assert.Equal(t, 3, pc.Stats.TotalItems)
	assert.Equal(t, 1, pc.Stats.DoneItems)
	assert.Equal(t, 2, pc.Stats.RiskyItems)
	assert.Equal(t, 2, pc.FindingCounts.Red)
	assert.Equal(t, 1, pc.FindingCounts.Yellow)

	require.Len(t, pc.MissedItems, 1)
	assert.Equal(t, "Checkout flow", pc.MissedItems[0].Title)
	assert.Equal(t, "Dev", pc.MissedItems[0].Track)
	assert.Equal(t, 2, pc.MissedItems[0].DaysOverdue)

	require.Len(t, pc.TopRisks, 2)
	assert.Equal(t, "Checkout flow", pc.TopRisks[0].Title)
	assert.Equal(t, "Pricing page", pc.TopRisks[1].Title)
}

func TestBuildContextIsDeterministic(t *testing.T) {
	items, findings, verdict := testInputs()

	first := BuildContext("Sprint 4", items, findings, verdict, now)
	second := BuildContext("Sprint 4", items, findings, verdict, now)

	assert.Equal(t, first.JSON(), second.JSON())
}

func TestBuildContextCapsTopRisks(t *testing.T) {
	var items []domain.SprintItem
	findings := make(map[string][]domain.RiskFinding)
	for i := 0; i < 25; i++ {
		id := string(rune('a' + i))
		items = append(items, domain.SprintItem{ID: id, Title: "Item " + id})
		findings[id] = []domain.RiskFinding{{ItemID: id, Kind: domain.FindingMissingOwner, Severity: domain.SeverityRed}}
	}

	pc := BuildContext("Sprint 1", items, findings, domain.TimelineVerdict{Status: domain.VerdictMet}, now)

	assert.Len(t, pc.TopRisks, maxTopRisks)
	assert.Equal(t, 25, pc.Stats.RiskyItems)
}

func TestFallbackContainsVerdictAndMissedTitles(t *testing.T) {
	items, findings, verdict := testInputs()
	pc := BuildContext("Sprint 4", items, findings, verdict, now)

	text := Fallback(pc)

	assert.Contains(t, text, "Sprint 4")
	assert.Contains(t, text, "Missed")
	assert.Contains(t, text, "Checkout flow")
	assert.Contains(t, text, "Actions:")
}

// Fake generators for Produce.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, _ PromptContext) (string, error) {
	return f.text, f.err
}

func TestProduceHappyPath(t *testing.T) {
	items, findings, verdict := testInputs()
	pc := BuildContext("Sprint 4", items, findings, verdict, now)

	text, degraded, err := Produce(context.Background(), &fakeGenerator{text: "All good."}, pc)

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, "All good.", text)
}

// Generator failure or empty output degrades to the deterministic fallback.
func TestProduceDegradesOnFailure(t *testing.T) {
	items, findings, verdict := testInputs()
	pc := BuildContext("Sprint 4", items, findings, verdict, now)

	text, degraded, err := Produce(context.Background(), &fakeGenerator{err: errors.New("quota exhausted")}, pc)
	assert.Error(t, err)
	assert.True(t, degraded)
	assert.Equal(t, Fallback(pc), text)

	text, degraded, err = Produce(context.Background(), &fakeGenerator{text: "   "}, pc)
	assert.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, Fallback(pc), text)
}

func TestProduceWithoutGenerator(t *testing.T) {
	items, findings, verdict := testInputs()
	pc := BuildContext("Sprint 4", items, findings, verdict, now)

	text, degraded, err := Produce(context.Background(), nil, pc)

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, Fallback(pc), text)
}
