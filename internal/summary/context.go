// Package summary builds the generation context for the sprint summary and
// talks to the external text generator. The generated text is display-only:
// nothing downstream makes decisions on it, which is why a non-deterministic
// generator is acceptable here.
package summary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sprintpulse/internal/domain"
)

// maxTopRisks bounds the prompt context size.
const maxTopRisks = 10

// Stats are the sprint-level counts included in the context.
type Stats struct {
	TotalItems   int `json:"total_items"`
	DoneItems    int `json:"done_items"`
	BlockedItems int `json:"blocked_items"`
	RiskyItems   int `json:"risky_items"`
}

// MissedItem describes one contributor to a Missed verdict.
type MissedItem struct {
	Title       string `json:"title"`
	Track       string `json:"track"`
	DaysOverdue int    `json:"days_overdue"`
}

// RiskLine is one at-risk item with its reasons, capped at maxTopRisks.
type RiskLine struct {
	Title   string   `json:"title"`
	Reasons []string `json:"reasons"`
}

// PromptContext is the bounded, deterministic input for the generator. It
// carries only derived sprint data, never raw unrelated board content.
type PromptContext struct {
	Sprint        string       `json:"sprint"`
	Verdict       string       `json:"verdict"`
	Stats         Stats        `json:"stats"`
	FindingCounts struct {
		Red    int `json:"red"`
		Yellow int `json:"yellow"`
	} `json:"finding_counts"`
	MissedItems []MissedItem `json:"missed_items"`
	TopRisks    []RiskLine   `json:"top_risks"`
}

// BuildContext serializes the run's results into the generator context.
// Output is deterministic for identical input: items are walked in their
// given order and the verdict's missed ordering is preserved.
func BuildContext(sprintTitle string, items []domain.SprintItem, findings map[string][]domain.RiskFinding, verdict domain.TimelineVerdict, now time.Time) PromptContext {
	pc := PromptContext{
		Sprint:  sprintTitle,
		Verdict: string(verdict.Status),
		// Empty slices rather than nil so the serialized context is stable.
		MissedItems: []MissedItem{},
		TopRisks:    []RiskLine{},
	}

	byID := make(map[string]domain.SprintItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
		pc.Stats.TotalItems++
		if item.Status == domain.StatusDone {
			pc.Stats.DoneItems++
		}
		if item.IsBlocked {
			pc.Stats.BlockedItems++
		}
	}

	for _, item := range items {
		fs := findings[item.ID]
		if len(fs) == 0 {
			continue
		}
		pc.Stats.RiskyItems++
		for _, f := range fs {
			switch f.Severity {
			case domain.SeverityRed:
				pc.FindingCounts.Red++
			case domain.SeverityYellow:
				pc.FindingCounts.Yellow++
			}
		}
		if len(pc.TopRisks) < maxTopRisks {
			line := RiskLine{Title: item.Title}
			for _, f := range fs {
				line.Reasons = append(line.Reasons, f.Detail)
			}
			pc.TopRisks = append(pc.TopRisks, line)
		}
	}

	for _, id := range verdict.MissedItems {
		item, ok := byID[id]
		if !ok {
			continue
		}
		mi := MissedItem{Title: item.Title, Track: string(item.Track)}
		if item.DueDate != nil {
			mi.DaysOverdue = int(now.Sub(*item.DueDate).Hours() / 24)
		}
		pc.MissedItems = append(pc.MissedItems, mi)
	}

	return pc
}

// JSON renders the context for embedding into the prompt.
func (pc PromptContext) JSON() string {
	b, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		// Marshalling plain structs cannot fail; keep the signature simple.
		return "{}"
	}
	return string(b)
}

// Fallback builds the deterministic rule-generated summary used when the
// external generator fails or returns empty text.
func Fallback(pc PromptContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sprint Summary for %s:\n", pc.Sprint)
	fmt.Fprintf(&b, "- Timeline verdict: %s\n", pc.Verdict)
	fmt.Fprintf(&b, "- Total items: %d\n", pc.Stats.TotalItems)
	fmt.Fprintf(&b, "- Done: %d\n", pc.Stats.DoneItems)
	fmt.Fprintf(&b, "- Blocked: %d\n", pc.Stats.BlockedItems)
	fmt.Fprintf(&b, "- At risk: %d\n", pc.Stats.RiskyItems)

	if len(pc.MissedItems) > 0 {
		b.WriteString("\nItems past their due date:\n")
		for _, mi := range pc.MissedItems {
			fmt.Fprintf(&b, "- %s (%s, %d day(s) overdue)\n", mi.Title, mi.Track, mi.DaysOverdue)
		}
	}
	if len(pc.TopRisks) > 0 {
		b.WriteString("\nTop risks:\n")
		for _, r := range pc.TopRisks {
			fmt.Fprintf(&b, "- %s: %s\n", r.Title, strings.Join(r.Reasons, ", "))
		}
	}

	b.WriteString("\nActions:\n")
	b.WriteString("- Assign owners to unowned items.\n")
	b.WriteString("- Clear blockers and escalate stalled items.\n")
	b.WriteString("- Replan items due within the near-due window.\n")
	return b.String()
}
