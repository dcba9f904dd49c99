// Package timeline folds per-item findings into the sprint-level verdict.
package timeline

import (
	"sort"
	"time"

	"sprintpulse/internal/domain"
)

// Aggregate computes the sprint verdict from all items and their findings.
//
// Items with an OverdueOpen finding are miss contributors; items still
// InProgress with a future due date are ongoing contributors. Any miss
// contributor makes the verdict Missed, otherwise any ongoing contributor
// makes it Ongoing, otherwise Met.
//
// MissedItems is sorted by ascending due date, ties broken by item id, nil
// due dates last. The ordering is fully deterministic for identical input;
// idempotent summaries and reproducible tests depend on it.
func Aggregate(items []domain.SprintItem, findings []domain.RiskFinding, now time.Time) domain.TimelineVerdict {
	overdue := make(map[string]bool)
	for _, f := range findings {
		if f.Kind == domain.FindingOverdueOpen {
			overdue[f.ItemID] = true
		}
	}

	var missed []domain.SprintItem
	ongoing := false
	for _, item := range items {
		if overdue[item.ID] {
			missed = append(missed, item)
			continue
		}
		if item.Status == domain.StatusInProgress && item.DueDate != nil && item.DueDate.After(now) {
			ongoing = true
		}
	}

	if len(missed) > 0 {
		sort.SliceStable(missed, func(i, j int) bool {
			return lessByDueThenID(missed[i], missed[j])
		})
		ids := make([]string, len(missed))
		for i, item := range missed {
			ids[i] = item.ID
		}
		return domain.TimelineVerdict{Status: domain.VerdictMissed, MissedItems: ids}
	}
	if ongoing {
		return domain.TimelineVerdict{Status: domain.VerdictOngoing}
	}
	return domain.TimelineVerdict{Status: domain.VerdictMet}
}

func lessByDueThenID(a, b domain.SprintItem) bool {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return domain.LessID(a.ID, b.ID)
	case a.DueDate == nil:
		return false // nil due sorts last
	case b.DueDate == nil:
		return true
	case a.DueDate.Equal(*b.DueDate):
		return domain.LessID(a.ID, b.ID)
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}
