// Package board provides an in-memory snapshot of one fetched board state.
// It handles column resolution by title, sprint group lookup, and the split
// between work rows and existing summary rows, so later pipeline stages never
// touch raw API shapes directly.
package board

import (
	"errors"
	"fmt"
	"strings"

	"sprintpulse/internal/monday"
)

// Role names the purpose a board column plays for this tool. Columns are
// located by title, not id, because ids differ per board.
type Role string

const (
	RoleStatus     Role = "status"
	RoleTrack      Role = "track"
	RoleOwner      Role = "owner"
	RoleTimeline   Role = "timeline"
	RoleCompletion Role = "completion"
	RoleDependency Role = "dependency"
	RoleHighlight  Role = "highlight"
)

// ColumnMap maps a role to the resolved column id. A role missing from the
// map means the board has no matching column; callers treat that as "column
// not present", never as an error.
type ColumnMap map[Role]string

// SummaryPrefix is the case-insensitive title prefix that marks an item as
// the sprint summary row rather than a work item.
const SummaryPrefix = "sprint summary"

// ErrGroupNotFound indicates no group matched the requested sprint number.
var ErrGroupNotFound = errors.New("sprint group not found")

// Snapshot is the read-only view of one board fetch: metadata plus every
// item across all pages. One snapshot serves exactly one evaluation run.
type Snapshot struct {
	board   *monday.Board
	records []monday.RawRecord
}

// NewSnapshot builds a snapshot from board metadata and the fully paginated
// record list (the board's first page plus all NextItems pages).
func NewSnapshot(b *monday.Board, records []monday.RawRecord) *Snapshot {
	return &Snapshot{board: b, records: records}
}

// Name returns the board display name.
func (s *Snapshot) Name() string {
	return s.board.Name
}

// Groups returns all groups on the board.
func (s *Snapshot) Groups() []monday.Group {
	return s.board.Groups
}

// SprintGroups returns groups whose titles start with "sprint",
// case-insensitively. Used by the interactive picker.
func (s *Snapshot) SprintGroups() []monday.Group {
	var groups []monday.Group
	for _, g := range s.board.Groups {
		if strings.HasPrefix(norm(g.Title), "sprint") {
			groups = append(groups, g)
		}
	}
	return groups
}

// FindSprintGroup locates the group whose title starts with "Sprint <n>",
// case-insensitively. Returns ErrGroupNotFound if no group matches.
func (s *Snapshot) FindSprintGroup(number int) (monday.Group, error) {
	prefix := fmt.Sprintf("sprint %d", number)
	for _, g := range s.board.Groups {
		title := norm(g.Title)
		if title == prefix || strings.HasPrefix(title, prefix+" ") || strings.HasPrefix(title, prefix+":") {
			return g, nil
		}
	}
	return monday.Group{}, fmt.Errorf("%w: no group starting with 'Sprint %d' on board '%s'", ErrGroupNotFound, number, s.board.Name)
}

// ResolveColumns maps each role to a column id by matching the board's
// column titles against the candidate titles, case-insensitively. The first
// candidate that matches wins. Roles with no matching column are absent from
// the result.
func (s *Snapshot) ResolveColumns(titles map[Role][]string) ColumnMap {
	resolved := make(ColumnMap, len(titles))
	for role, candidates := range titles {
		for _, want := range candidates {
			if id := s.findColumnByTitle(want); id != "" {
				resolved[role] = id
				break
			}
		}
	}
	return resolved
}

func (s *Snapshot) findColumnByTitle(title string) string {
	want := norm(title)
	for _, c := range s.board.Columns {
		if norm(c.Title) == want {
			return c.ID
		}
	}
	return ""
}

// Partition splits the group's records into work rows and existing summary
// rows. Summary rows are identified by the SummaryPrefix title convention
// and are excluded from evaluation so the tool never assesses its own output.
func (s *Snapshot) Partition(groupID string) (work, summaries []monday.RawRecord) {
	for _, rec := range s.records {
		if rec.GroupID != groupID {
			continue
		}
		if strings.HasPrefix(norm(rec.Name), SummaryPrefix) {
			summaries = append(summaries, rec)
		} else {
			work = append(work, rec)
		}
	}
	return work, summaries
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
