// Package writeback decides the board mutations for one run: whether the
// sprint summary row is updated or created, and which highlight each work
// item receives. Decisions are pure; the pipeline executes them.
package writeback

import (
	"sort"

	"sprintpulse/internal/domain"
	"sprintpulse/internal/monday"
)

// SummaryItemName returns the canonical title for a sprint's summary row.
// The stable, sprint-scoped name is what keeps repeated runs converging on
// one row instead of accumulating dated duplicates.
func SummaryItemName(groupTitle string) string {
	return "Sprint Summary — " + groupTitle
}

// ResolveTarget decides update-vs-create from the existing summary rows in
// the sprint group.
//
// Zero rows means create. One row means update it in place. More than one is
// an inconsistent board state: the row with the smallest id wins and the
// rest are returned as conflicts for the caller to log. A second row is
// never created.
func ResolveTarget(summaryRows []monday.RawRecord) (domain.WriteTarget, []string) {
	if len(summaryRows) == 0 {
		return domain.WriteTarget{Action: domain.ActionCreate}, nil
	}

	ids := make([]string, len(summaryRows))
	for i, rec := range summaryRows {
		ids[i] = rec.ID
	}
	sort.Slice(ids, func(i, j int) bool { return domain.LessID(ids[i], ids[j]) })

	target := domain.WriteTarget{Action: domain.ActionUpdate, ExistingID: ids[0]}
	if len(ids) == 1 {
		return target, nil
	}
	return target, ids[1:]
}

// HighlightAction is one of the three highlight states a run can emit.
type HighlightAction string

const (
	HighlightRed    HighlightAction = "Red"
	HighlightYellow HighlightAction = "Yellow"
	HighlightClear  HighlightAction = "Clear"
)

// Highlight is one instruction for the board's highlight column.
type Highlight struct {
	ItemID string
	Action HighlightAction
}

// HighlightPlan emits the highlight instructions in item order: red items get
// the red label, yellow items the yellow label. Clean items are cleared only
// when flagged reports the column currently set, so a clean board produces no
// mutations and stale flags from earlier runs still get wiped.
func HighlightPlan(items []domain.SprintItem, findings map[string][]domain.RiskFinding, flagged map[string]bool) []Highlight {
	plan := make([]Highlight, 0, len(items))
	for _, item := range items {
		switch domain.MaxSeverity(findings[item.ID]) {
		case domain.SeverityRed:
			plan = append(plan, Highlight{ItemID: item.ID, Action: HighlightRed})
		case domain.SeverityYellow:
			plan = append(plan, Highlight{ItemID: item.ID, Action: HighlightYellow})
		default:
			if flagged[item.ID] {
				plan = append(plan, Highlight{ItemID: item.ID, Action: HighlightClear})
			}
		}
	}
	return plan
}
