package writeback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintpulse/internal/domain"
	"sprintpulse/internal/monday"
)

func summaryRow(id string) monday.RawRecord {
	return monday.RawRecord{ID: id, Name: "Sprint Summary — Sprint 4"}
}

func TestResolveTargetCreate(t *testing.T) {
	target, conflicts := ResolveTarget(nil)

	assert.Equal(t, domain.ActionCreate, target.Action)
	assert.Empty(t, target.ExistingID)
	assert.Empty(t, conflicts)
}

func TestResolveTargetUpdate(t *testing.T) {
	target, conflicts := ResolveTarget([]monday.RawRecord{summaryRow("555")})

	assert.Equal(t, domain.ActionUpdate, target.Action)
	assert.Equal(t, "555", target.ExistingID)
	assert.Empty(t, conflicts)
}

// More than one summary row is inconsistent board state: keep the smallest
// id, report the rest, never create another.
func TestResolveTargetConflict(t *testing.T) {
	rows := []monday.RawRecord{summaryRow("900"), summaryRow("100"), summaryRow("80")}

	target, conflicts := ResolveTarget(rows)

	assert.Equal(t, domain.ActionUpdate, target.Action)
	assert.Equal(t, "80", target.ExistingID)
	assert.Equal(t, []string{"100", "900"}, conflicts)
}

func TestSummaryItemName(t *testing.T) {
	assert.Equal(t, "Sprint Summary — Sprint 4 (Aug)", SummaryItemName("Sprint 4 (Aug)"))
}

func TestHighlightPlan(t *testing.T) {
	items := []domain.SprintItem{
		{ID: "1"},
		{ID: "2"},
		{ID: "3"},
		{ID: "4"},
	}
	findings := map[string][]domain.RiskFinding{
		"1": {{ItemID: "1", Kind: domain.FindingBlocked, Severity: domain.SeverityRed}},
		"2": {{ItemID: "2", Kind: domain.FindingNearDue, Severity: domain.SeverityYellow}},
	}
	flagged := map[string]bool{"3": true}

	plan := HighlightPlan(items, findings, flagged)

	require.Len(t, plan, 3)
	assert.Equal(t, Highlight{ItemID: "1", Action: HighlightRed}, plan[0])
	assert.Equal(t, Highlight{ItemID: "2", Action: HighlightYellow}, plan[1])
	// Item 3 carries a stale flag and gets cleared; item 4 is clean with an
	// empty column and produces no instruction at all.
	assert.Equal(t, Highlight{ItemID: "3", Action: HighlightClear}, plan[2])
}

// A fully clean sprint with no prior flags must plan zero mutations.
func TestHighlightPlanCleanBoardIsNoOp(t *testing.T) {
	items := []domain.SprintItem{{ID: "1"}, {ID: "2"}}

	plan := HighlightPlan(items, nil, map[string]bool{})
	assert.Empty(t, plan)
}

func TestHighlightPlanRedDominatesYellow(t *testing.T) {
	items := []domain.SprintItem{{ID: "1"}}
	findings := map[string][]domain.RiskFinding{
		"1": {
			{ItemID: "1", Kind: domain.FindingNearDue, Severity: domain.SeverityYellow},
			{ItemID: "1", Kind: domain.FindingMissingOwner, Severity: domain.SeverityRed},
		},
	}

	plan := HighlightPlan(items, findings, nil)
	require.Len(t, plan, 1)
	assert.Equal(t, HighlightRed, plan[0].Action)
}
