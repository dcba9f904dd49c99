// Package risk applies the governance rules to canonical sprint items.
// Evaluation is pure: findings derive from one item's fields plus the
// reference "now" timestamp, never from cross-item state. Side effects
// belong to the write-back layer.
package risk

import (
	"fmt"
	"time"

	"sprintpulse/internal/domain"
)

// DefaultNearDueDays is the near-due window when none is configured.
// The stakeholder default is unconfirmed, so it stays overridable.
const DefaultNearDueDays = 3

// rule is one governance check: a predicate over a single item plus the
// finding it produces when the predicate holds. Rules are independent; an
// item can trigger several.
type rule struct {
	kind     domain.FindingKind
	severity domain.Severity
	applies  func(item domain.SprintItem, now time.Time, nearDueDays int) bool
	detail   func(item domain.SprintItem, now time.Time) string
}

var rules = []rule{
	{
		kind:     domain.FindingMissingOwner,
		severity: domain.SeverityRed,
		applies: func(item domain.SprintItem, _ time.Time, _ int) bool {
			return item.Owner == ""
		},
		detail: func(item domain.SprintItem, _ time.Time) string {
			return "no owner assigned"
		},
	},
	{
		kind:     domain.FindingMissingTimeline,
		severity: domain.SeverityRed,
		applies: func(item domain.SprintItem, _ time.Time, _ int) bool {
			return item.DueDate == nil && item.ActualDate == nil
		},
		detail: func(item domain.SprintItem, _ time.Time) string {
			return "no timeline set"
		},
	},
	{
		kind:     domain.FindingBlocked,
		severity: domain.SeverityRed,
		applies: func(item domain.SprintItem, _ time.Time, _ int) bool {
			return item.IsBlocked
		},
		detail: func(item domain.SprintItem, _ time.Time) string {
			return "blocked or stuck"
		},
	},
	{
		kind:     domain.FindingOverdueOpen,
		severity: domain.SeverityRed,
		applies: func(item domain.SprintItem, now time.Time, _ int) bool {
			return item.DueDate != nil && item.DueDate.Before(now) && item.Status != domain.StatusDone
		},
		detail: func(item domain.SprintItem, now time.Time) string {
			return fmt.Sprintf("due %s passed, %d day(s) overdue", item.DueDate.Format("2006-01-02"), daysBetween(*item.DueDate, now))
		},
	},
	{
		kind:     domain.FindingNearDue,
		severity: domain.SeverityYellow,
		applies: func(item domain.SprintItem, now time.Time, nearDueDays int) bool {
			if item.DueDate == nil || item.Status == domain.StatusDone {
				return false
			}
			days := daysBetween(now, *item.DueDate)
			return days >= 0 && days <= nearDueDays
		},
		detail: func(item domain.SprintItem, now time.Time) string {
			return fmt.Sprintf("due %s, %d day(s) left", item.DueDate.Format("2006-01-02"), daysBetween(now, *item.DueDate))
		},
	},
}

// Evaluator runs the rule table with a configured near-due window.
type Evaluator struct {
	nearDueDays int
}

// NewEvaluator creates an evaluator. Values below zero fall back to the
// default window.
func NewEvaluator(nearDueDays int) *Evaluator {
	if nearDueDays < 0 {
		nearDueDays = DefaultNearDueDays
	}
	return &Evaluator{nearDueDays: nearDueDays}
}

// Evaluate returns every finding the item triggers at the given reference
// time. An empty result means the item is clean.
func (e *Evaluator) Evaluate(item domain.SprintItem, now time.Time) []domain.RiskFinding {
	var findings []domain.RiskFinding
	for _, r := range rules {
		if !r.applies(item, now, e.nearDueDays) {
			continue
		}
		findings = append(findings, domain.RiskFinding{
			ItemID:   item.ID,
			Kind:     r.kind,
			Severity: r.severity,
			Detail:   r.detail(item, now),
		})
	}
	return findings
}

// Evaluate runs the rule table with the default near-due window.
func Evaluate(item domain.SprintItem, now time.Time) []domain.RiskFinding {
	return NewEvaluator(DefaultNearDueDays).Evaluate(item, now)
}

// daysBetween counts whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
