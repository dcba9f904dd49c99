// Package report renders the final sprint report for the terminal.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/wordwrap"

	"sprintpulse/internal/domain"
	"sprintpulse/internal/tui"
)

const summaryWidth = 80

// Render writes the human-readable run result.
func Render(w io.Writer, rep *domain.SprintReport) {
	fmt.Fprintln(w, tui.TitleStyle.Render("Sprint Report: "+rep.SprintTitle))
	fmt.Fprintf(w, "Timeline verdict: %s\n", renderVerdict(rep.Verdict.Status))
	fmt.Fprintf(w, "Items evaluated: %d, at risk: %d\n", rep.ItemCount, rep.RiskyCount)
	if len(rep.Verdict.MissedItems) > 0 {
		fmt.Fprintf(w, "Missed items (by due date): %v\n", rep.Verdict.MissedItems)
	}

	if len(rep.Findings) > 0 {
		fmt.Fprintln(w)
		renderFindings(w, rep.Findings)
	}

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Normalization warnings:")
		for _, warn := range rep.Warnings {
			fmt.Fprintf(w, "  - item %s: %s (%s)\n", warn.ItemID, warn.Detail, warn.Code)
		}
	}

	fmt.Fprintln(w)
	if rep.Degraded {
		fmt.Fprintln(w, tui.DegradedStyle.Render("Summary (degraded: generator unavailable, rule-built fallback):"))
	} else {
		fmt.Fprintln(w, "Summary:")
	}
	fmt.Fprintln(w, wordwrap.String(rep.Summary, summaryWidth))

	fmt.Fprintln(w)
	switch rep.Target.Action {
	case domain.ActionUpdate:
		fmt.Fprintf(w, "Write-back: updated existing summary item %s\n", rep.Target.ExistingID)
	default:
		fmt.Fprintln(w, "Write-back: created new summary item")
	}
}

func renderFindings(w io.Writer, findings map[string][]domain.RiskFinding) {
	ids := make([]string, 0, len(findings))
	for id := range findings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return domain.LessID(ids[i], ids[j]) })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Item", "Finding", "Severity", "Detail"})
	for _, id := range ids {
		for _, f := range findings[id] {
			t.AppendRow(table.Row{id, f.Kind, f.Severity, f.Detail})
		}
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func renderVerdict(status domain.VerdictStatus) string {
	switch status {
	case domain.VerdictMet:
		return tui.VerdictMetStyle.Render(string(status))
	case domain.VerdictOngoing:
		return tui.VerdictOngoingStyle.Render(string(status))
	case domain.VerdictMissed:
		return tui.VerdictMissedStyle.Render(string(status))
	default:
		return string(status)
	}
}
