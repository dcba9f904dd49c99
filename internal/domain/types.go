// Package domain defines the canonical domain types for sprint risk evaluation.
// These types represent the core concepts independent of the Monday.com API structure.
package domain

import (
	"strconv"
	"time"
)

// Status is the canonical work-item status. Board-native status vocabulary
// is mapped onto this closed set by the normalizer.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusBlocked    Status = "Blocked"
	StatusDone       Status = "Done"
)

// Track is the discipline a work item belongs to.
type Track string

const (
	TrackProduct Track = "Product"
	TrackDesign  Track = "Design"
	TrackDev     Track = "Dev"
	TrackUnknown Track = "Unknown"
)

// SprintItem is the canonical form of one board row. It is constructed once
// by the normalizer and treated as read-only by every downstream component.
type SprintItem struct {
	ID         string     // Stable board item id, unique within a sprint
	Title      string     // Display text
	Owner      string     // Person reference; empty means unassigned
	Status     Status     // Canonical status
	Track      Track      // Discipline, TrackUnknown if unrecognized
	DueDate    *time.Time // End of the item's timeline, nil if absent/unparseable
	ActualDate *time.Time // Actual or projected completion date, nil if absent
	IsBlocked  bool       // Derived from status or a dependency field
}

// FindingKind identifies a governance rule that an item triggered.
type FindingKind string

const (
	FindingMissingOwner    FindingKind = "MissingOwner"
	FindingMissingTimeline FindingKind = "MissingTimeline"
	FindingBlocked         FindingKind = "Blocked"
	FindingOverdueOpen     FindingKind = "OverdueOpen"
	FindingNearDue         FindingKind = "NearDue"
)

// Severity ranks a finding. Red dominates Yellow when folding per item.
type Severity string

const (
	SeverityRed    Severity = "Red"
	SeverityYellow Severity = "Yellow"
)

// RiskFinding is one rule hit for one item. Findings are derived purely from
// a single SprintItem plus the evaluation's reference "now" timestamp.
type RiskFinding struct {
	ItemID   string
	Kind     FindingKind
	Severity Severity
	Detail   string
}

// VerdictStatus is the sprint-level timeline judgment.
type VerdictStatus string

const (
	VerdictMet     VerdictStatus = "Met"
	VerdictMissed  VerdictStatus = "Missed"
	VerdictOngoing VerdictStatus = "Ongoing"
)

// TimelineVerdict is the sprint-level result of folding all items.
// MissedItems is ordered by ascending due date with ties broken by item id,
// so identical input always yields identical output.
type TimelineVerdict struct {
	Status      VerdictStatus
	MissedItems []string
}

// Warning codes recorded by the normalizer.
const (
	WarnUnknownStatus       = "UnknownStatus"
	WarnUnparseableTimeline = "UnparseableTimeline"
	WarnMissingOwner        = "MissingOwner"
	WarnMissingTimeline     = "MissingTimeline"
)

// Warning records a non-fatal normalization issue on one item. The item is
// still processed with safe defaults.
type Warning struct {
	ItemID string
	Code   string
	Detail string
}

// WriteAction says whether the sprint summary row already exists.
type WriteAction string

const (
	ActionCreate WriteAction = "Create"
	ActionUpdate WriteAction = "Update"
)

// WriteTarget is the idempotent write-back decision: update the existing
// summary row in place, or create the single missing one.
type WriteTarget struct {
	Action     WriteAction
	ExistingID string // Set when Action is ActionUpdate
}

// SprintReport is the final artifact of one run. Built fresh per run,
// never cached.
type SprintReport struct {
	SprintTitle string
	Verdict     TimelineVerdict
	Findings    map[string][]RiskFinding // Item id -> findings
	Warnings    []Warning
	Summary     string
	Degraded    bool // Summary came from the rule-built fallback
	Target      WriteTarget
	ItemCount   int
	RiskyCount  int
}

// MaxSeverity returns the dominant severity among findings, or "" when the
// list is empty (a clean item).
func MaxSeverity(findings []RiskFinding) Severity {
	var sev Severity
	for _, f := range findings {
		if f.Severity == SeverityRed {
			return SeverityRed
		}
		sev = f.Severity
	}
	return sev
}

// LessID orders item ids numerically when both parse as integers (board ids
// are numeric), lexicographically otherwise.
func LessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
