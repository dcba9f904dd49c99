package monday

// ColumnValue is the raw value of one board column on one item.
// Text is Monday's rendered display text; Value is the column's raw JSON
// payload (a JSON-encoded string, may be empty or "null").
type ColumnValue struct {
	ID    string
	Type  string
	Text  string
	Value string
}

// RawRecord is one board item exactly as fetched, before normalization.
// Columns is keyed by column id; the normalizer must be defensive against
// absent keys, the API guarantees nothing beyond id and name.
type RawRecord struct {
	ID      string
	Name    string
	GroupID string
	Columns map[string]ColumnValue
}

// Column returns the value for a column id, and whether it was present
// with non-empty display text or payload.
func (r RawRecord) Column(id string) (ColumnValue, bool) {
	if id == "" {
		return ColumnValue{}, false
	}
	cv, ok := r.Columns[id]
	if !ok || (cv.Text == "" && (cv.Value == "" || cv.Value == "null")) {
		return cv, false
	}
	return cv, true
}

// Group is a board group (a sprint is one group).
type Group struct {
	ID    string
	Title string
}

// Column is a board column definition.
type Column struct {
	ID    string
	Title string
	Type  string
}

// Board is the board metadata plus the first page of items.
type Board struct {
	ID      string
	Name    string
	Groups  []Group
	Columns []Column
	Items   []RawRecord
	Cursor  string // Pagination cursor for NextItems, empty when exhausted
}
