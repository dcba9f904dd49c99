// Package normalize converts raw board records into canonical sprint items.
// Normalization never fails: every malformed or absent field falls back to a
// safe default and records a warning instead.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sprintpulse/internal/board"
	"sprintpulse/internal/domain"
	"sprintpulse/internal/monday"
)

// statusTable maps board-native status vocabulary onto the canonical set.
// Lookup is on lowercased, trimmed display text. Anything not in the table
// becomes NotStarted with an UnknownStatus warning.
var statusTable = map[string]domain.Status{
	"not started":   domain.StatusNotStarted,
	"todo":          domain.StatusNotStarted,
	"to do":         domain.StatusNotStarted,
	"planned":       domain.StatusNotStarted,
	"in progress":   domain.StatusInProgress,
	"working on it": domain.StatusInProgress,
	"in review":     domain.StatusInProgress,
	"blocked":       domain.StatusBlocked,
	"stuck":         domain.StatusBlocked,
	"done":          domain.StatusDone,
	"complete":      domain.StatusDone,
	"released":      domain.StatusDone,
}

var trackTable = map[string]domain.Track{
	"product": domain.TrackProduct,
	"design":  domain.TrackDesign,
	"dev":     domain.TrackDev,
}

// Normalize converts one raw record into a canonical SprintItem plus the
// warnings accumulated along the way. It never returns an error; malformed
// input yields defaults.
func Normalize(rec monday.RawRecord, cols board.ColumnMap) (domain.SprintItem, []domain.Warning) {
	var warnings []domain.Warning
	warn := func(code, detail string) {
		warnings = append(warnings, domain.Warning{ItemID: rec.ID, Code: code, Detail: detail})
	}

	item := domain.SprintItem{
		ID:     rec.ID,
		Title:  rec.Name,
		Status: domain.StatusNotStarted,
		Track:  domain.TrackUnknown,
	}

	// Status: fixed lookup table; empty means genuinely unset, which is the
	// default without a warning. Unrecognized literals warn.
	if cv, ok := rec.Column(cols[board.RoleStatus]); ok {
		text := norm(cv.Text)
		if status, known := statusTable[text]; known {
			item.Status = status
		} else if text != "" {
			warn(domain.WarnUnknownStatus, fmt.Sprintf("unrecognized status %q", cv.Text))
		}
	}

	if cv, ok := rec.Column(cols[board.RoleTrack]); ok {
		if track, known := trackTable[norm(cv.Text)]; known {
			item.Track = track
		}
	}

	item.Owner = parseOwner(rec, cols)
	if item.Owner == "" {
		warn(domain.WarnMissingOwner, "no owner assigned")
	}

	// Due date from the timeline column, actual/projected from the
	// completion column. Both run the same parser chain.
	if cv, ok := rec.Column(cols[board.RoleTimeline]); ok {
		if due, parsed := parseDate(cv); parsed {
			item.DueDate = due
		} else {
			warn(domain.WarnUnparseableTimeline, fmt.Sprintf("could not parse timeline %q", firstNonEmpty(cv.Text, cv.Value)))
		}
	}
	if cv, ok := rec.Column(cols[board.RoleCompletion]); ok {
		if actual, parsed := parseDate(cv); parsed {
			item.ActualDate = actual
		}
	}
	if item.DueDate == nil && item.ActualDate == nil && !hasWarning(warnings, domain.WarnUnparseableTimeline) {
		warn(domain.WarnMissingTimeline, "no timeline on item")
	}

	_, hasDependency := rec.Column(cols[board.RoleDependency])
	item.IsBlocked = item.Status == domain.StatusBlocked || hasDependency

	return item, warnings
}

// parseOwner extracts an owner from the people column. The rendered text is
// preferred; the raw personsAndTeams JSON is the fallback for boards that
// return ids only.
func parseOwner(rec monday.RawRecord, cols board.ColumnMap) string {
	cv, ok := rec.Column(cols[board.RoleOwner])
	if !ok {
		return ""
	}
	if text := strings.TrimSpace(cv.Text); text != "" {
		return text
	}

	var payload struct {
		PersonsAndTeams   []personRef `json:"personsAndTeams"`
		PersonsAndTeamsV2 []personRef `json:"personsAndTeamsV2"`
	}
	if err := json.Unmarshal([]byte(cv.Value), &payload); err != nil {
		return ""
	}
	refs := payload.PersonsAndTeams
	if len(refs) == 0 {
		refs = payload.PersonsAndTeamsV2
	}
	if len(refs) == 0 {
		return ""
	}
	return refs[0].String()
}

type personRef struct {
	ID json.Number `json:"id"`
}

func (p personRef) String() string {
	return p.ID.String()
}

// dateParser attempts one encoding and reports whether it matched.
// Parsers never fail hard; a non-match is a clean "no" so the next parser
// in the chain gets its turn.
type dateParser func(cv monday.ColumnValue) (*time.Time, bool)

// dateParsers is tried in priority order; the first match wins.
var dateParsers = []dateParser{
	parseISODate,
	parseISODateTime,
	parseTimelineJSON,
}

func parseDate(cv monday.ColumnValue) (*time.Time, bool) {
	for _, p := range dateParsers {
		if d, ok := p(cv); ok {
			return d, true
		}
	}
	return nil, false
}

func parseISODate(cv monday.ColumnValue) (*time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(cv.Text))
	if err != nil {
		return nil, false
	}
	return &t, true
}

// parseISODateTime accepts a full RFC 3339 timestamp and keeps the date part.
func parseISODateTime(cv monday.ColumnValue) (*time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(cv.Text))
	if err != nil {
		return nil, false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, true
}

// parseTimelineJSON handles the board-native structured timeline. Monday
// usually sends {"from": ..., "to": ...} but older boards use
// startDate/endDate or start_date/end_date. Only the end date matters for
// due-date purposes.
func parseTimelineJSON(cv monday.ColumnValue) (*time.Time, bool) {
	if cv.Value == "" || cv.Value == "null" {
		return nil, false
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cv.Value), &payload); err != nil {
		return nil, false
	}
	for _, key := range []string{"to", "endDate", "end_date"} {
		raw, ok := payload[key].(string)
		if !ok || raw == "" {
			continue
		}
		if len(raw) > 10 {
			raw = raw[:10]
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			continue
		}
		return &t, true
	}
	return nil, false
}

func hasWarning(warnings []domain.Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
