// Package run wires the pipeline stages into one synchronous pass:
// fetch, normalize, evaluate, aggregate, summarize, resolve, write.
// Each run re-derives everything from freshly fetched board data; no state
// crosses runs, which is what makes repeated runs idempotent.
package run

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sprintpulse/internal/board"
	"sprintpulse/internal/config"
	"sprintpulse/internal/domain"
	"sprintpulse/internal/monday"
	"sprintpulse/internal/normalize"
	"sprintpulse/internal/risk"
	"sprintpulse/internal/summary"
	"sprintpulse/internal/timeline"
	"sprintpulse/internal/writeback"
)

// BoardClient is the board collaborator contract the pipeline consumes.
// *monday.Client satisfies it; tests substitute fakes.
type BoardClient interface {
	GetBoard(ctx context.Context, boardID string, pageLimit int) (*monday.Board, error)
	NextItems(ctx context.Context, cursor string, pageLimit int) ([]monday.RawRecord, string, error)
	SetHighlight(ctx context.Context, boardID, itemID, columnID, label string) error
	ClearHighlight(ctx context.Context, boardID, itemID, columnID string) error
	CreateItem(ctx context.Context, boardID, groupID, name string) (string, error)
	RenameItem(ctx context.Context, boardID, itemID, name string) error
	PostUpdate(ctx context.Context, itemID, body string) (string, error)
}

// Pipeline executes one evaluation run against a board.
type Pipeline struct {
	Client    BoardClient
	Generator summary.Generator // Nil means fallback summaries only
	Config    *config.Config
	Log       *zap.Logger
	DryRun    bool

	// Now overrides the reference timestamp; tests set it for determinism.
	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	t := time.Now().UTC()
	if p.Now != nil {
		t = p.Now()
	}
	// Rules compare dates, not instants.
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Fetch loads the board and paginates through every item, returning the
// per-run snapshot. Board access failures here are fatal for the run.
func (p *Pipeline) Fetch(ctx context.Context) (*board.Snapshot, error) {
	b, err := p.Client.GetBoard(ctx, p.Config.BoardID, p.Config.PageLimit)
	if err != nil {
		return nil, fmt.Errorf("board fetch failed: %w", err)
	}

	records := append([]monday.RawRecord(nil), b.Items...)
	cursor := b.Cursor
	for cursor != "" {
		page, next, err := p.Client.NextItems(ctx, cursor, p.Config.PageLimit)
		if err != nil {
			return nil, fmt.Errorf("board fetch failed: %w", err)
		}
		records = append(records, page...)
		cursor = next
	}

	p.Log.Debug("board fetched",
		zap.String("board", b.Name),
		zap.Int("items", len(records)),
		zap.Int("groups", len(b.Groups)))
	return board.NewSnapshot(b, records), nil
}

// RunSprint fetches the board, locates the sprint group by number, and runs
// the evaluation. This is the non-interactive entry point.
func (p *Pipeline) RunSprint(ctx context.Context, sprintNumber int) (*domain.SprintReport, error) {
	snap, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	group, err := snap.FindSprintGroup(sprintNumber)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, snap, group)
}

// Run evaluates one sprint group of an already-fetched snapshot and writes
// the results back unless DryRun is set.
func (p *Pipeline) Run(ctx context.Context, snap *board.Snapshot, group monday.Group) (*domain.SprintReport, error) {
	now := p.now()
	cols := snap.ResolveColumns(p.Config.Columns)
	work, summaryRows := snap.Partition(group.ID)
	if len(work) == 0 {
		return nil, fmt.Errorf("no work items in group '%s'; add items or check permissions", group.Title)
	}

	// Normalize and evaluate. Per-item issues accumulate in the report
	// instead of aborting the run.
	evaluator := risk.NewEvaluator(p.Config.NearDueDays)
	items := make([]domain.SprintItem, 0, len(work))
	var warnings []domain.Warning
	var allFindings []domain.RiskFinding
	grouped := make(map[string][]domain.RiskFinding)
	for _, rec := range work {
		item, ws := normalize.Normalize(rec, cols)
		items = append(items, item)
		warnings = append(warnings, ws...)

		findings := evaluator.Evaluate(item, now)
		allFindings = append(allFindings, findings...)
		if len(findings) > 0 {
			grouped[item.ID] = findings
		}
	}

	verdict := timeline.Aggregate(items, allFindings, now)
	p.Log.Info("sprint evaluated",
		zap.String("group", group.Title),
		zap.Int("items", len(items)),
		zap.Int("findings", len(allFindings)),
		zap.String("verdict", string(verdict.Status)))

	pc := summary.BuildContext(group.Title, items, grouped, verdict, now)
	text, degraded, genErr := summary.Produce(ctx, p.Generator, pc)
	if genErr != nil {
		p.Log.Warn("summary generation failed, using fallback", zap.Error(genErr))
	}

	target, conflicts := writeback.ResolveTarget(summaryRows)
	if len(conflicts) > 0 {
		p.Log.Warn("multiple summary rows found, keeping the oldest",
			zap.String("kept", target.ExistingID),
			zap.Strings("conflicting", conflicts))
	}

	report := &domain.SprintReport{
		SprintTitle: group.Title,
		Verdict:     verdict,
		Findings:    grouped,
		Warnings:    warnings,
		Summary:     text,
		Degraded:    degraded,
		Target:      target,
		ItemCount:   len(items),
		RiskyCount:  len(grouped),
	}

	if p.DryRun {
		p.Log.Info("dry run, skipping board mutations")
		return report, nil
	}
	if err := p.write(ctx, group, cols, work, items, grouped, report); err != nil {
		return nil, err
	}
	return report, nil
}

// write applies the run's mutations: highlights first, then the summary row,
// matching the order of the board scripts this replaces.
func (p *Pipeline) write(ctx context.Context, group monday.Group, cols board.ColumnMap, work []monday.RawRecord, items []domain.SprintItem, grouped map[string][]domain.RiskFinding, report *domain.SprintReport) error {
	highlightCol, hasHighlight := cols[board.RoleHighlight]
	if hasHighlight {
		// Fetched column state decides whether a clean item needs a clear.
		flagged := make(map[string]bool, len(work))
		for _, rec := range work {
			_, set := rec.Column(highlightCol)
			flagged[rec.ID] = set
		}
		for _, h := range writeback.HighlightPlan(items, grouped, flagged) {
			var err error
			switch h.Action {
			case writeback.HighlightRed:
				err = p.Client.SetHighlight(ctx, p.Config.BoardID, h.ItemID, highlightCol, p.Config.RedLabel)
			case writeback.HighlightYellow:
				err = p.Client.SetHighlight(ctx, p.Config.BoardID, h.ItemID, highlightCol, p.Config.YellowLabel)
			case writeback.HighlightClear:
				err = p.Client.ClearHighlight(ctx, p.Config.BoardID, h.ItemID, highlightCol)
			}
			if err != nil {
				return fmt.Errorf("highlight write failed for item %s: %w", h.ItemID, err)
			}
		}
	} else {
		p.Log.Debug("no highlight column on board, skipping highlights")
	}

	name := writeback.SummaryItemName(group.Title)
	targetID := report.Target.ExistingID
	if report.Target.Action == domain.ActionCreate {
		id, err := p.Client.CreateItem(ctx, p.Config.BoardID, group.ID, name)
		if err != nil {
			return fmt.Errorf("summary item create failed: %w", err)
		}
		targetID = id
	} else {
		if err := p.Client.RenameItem(ctx, p.Config.BoardID, targetID, name); err != nil {
			return fmt.Errorf("summary item rename failed: %w", err)
		}
	}

	updateID, err := p.Client.PostUpdate(ctx, targetID, report.Summary)
	if err != nil {
		return fmt.Errorf("summary update post failed: %w", err)
	}
	p.Log.Info("summary written",
		zap.String("action", string(report.Target.Action)),
		zap.String("item", targetID),
		zap.String("update", updateID),
		zap.Bool("degraded", report.Degraded))
	return nil
}
