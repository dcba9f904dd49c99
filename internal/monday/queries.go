package monday

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
)

// itemNode is the shared response shape for board items.
type itemNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group *struct {
		ID string `json:"id"`
	} `json:"group"`
	ColumnValues []struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Text  string `json:"text"`
		Value string `json:"value"`
	} `json:"column_values"`
}

func (n itemNode) toRecord() RawRecord {
	rec := RawRecord{
		ID:      n.ID,
		Name:    n.Name,
		Columns: make(map[string]ColumnValue, len(n.ColumnValues)),
	}
	if n.Group != nil {
		rec.GroupID = n.Group.ID
	}
	for _, cv := range n.ColumnValues {
		rec.Columns[cv.ID] = ColumnValue{
			ID:    cv.ID,
			Type:  cv.Type,
			Text:  cv.Text,
			Value: cv.Value,
		}
	}
	return rec
}

// GetBoard fetches board metadata (name, groups, columns) together with the
// first page of items. Use the returned Board.Cursor with NextItems to fetch
// the remaining pages.
func (c *Client) GetBoard(ctx context.Context, boardID string, pageLimit int) (*Board, error) {
	req := graphql.NewRequest(`
		query($boardID: [ID!], $limit: Int!) {
			boards(ids: $boardID) {
				id
				name
				groups {
					id
					title
				}
				columns {
					id
					title
					type
				}
				items_page(limit: $limit) {
					cursor
					items {
						id
						name
						group {
							id
						}
						column_values {
							id
							type
							text
							value
						}
					}
				}
			}
		}
	`)
	req.Var("boardID", []string{boardID})
	req.Var("limit", pageLimit)

	var resp struct {
		Boards []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Groups []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"groups"`
			Columns []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
				Type  string `json:"type"`
			} `json:"columns"`
			ItemsPage struct {
				Cursor string     `json:"cursor"`
				Items  []itemNode `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}
	if len(resp.Boards) == 0 {
		return nil, fmt.Errorf("board %s not found or not accessible", boardID)
	}

	b := resp.Boards[0]
	board := &Board{
		ID:     b.ID,
		Name:   b.Name,
		Cursor: b.ItemsPage.Cursor,
	}
	for _, g := range b.Groups {
		board.Groups = append(board.Groups, Group{ID: g.ID, Title: g.Title})
	}
	for _, col := range b.Columns {
		board.Columns = append(board.Columns, Column{ID: col.ID, Title: col.Title, Type: col.Type})
	}
	for _, n := range b.ItemsPage.Items {
		board.Items = append(board.Items, n.toRecord())
	}
	return board, nil
}

// NextItems fetches the next page of board items for a pagination cursor.
// Returns the records, the next cursor (empty when exhausted), and an error.
func (c *Client) NextItems(ctx context.Context, cursor string, pageLimit int) ([]RawRecord, string, error) {
	req := graphql.NewRequest(`
		query($cursor: String!, $limit: Int!) {
			next_items_page(limit: $limit, cursor: $cursor) {
				cursor
				items {
					id
					name
					group {
						id
					}
					column_values {
						id
						type
						text
						value
					}
				}
			}
		}
	`)
	req.Var("cursor", cursor)
	req.Var("limit", pageLimit)

	var resp struct {
		NextItemsPage struct {
			Cursor string     `json:"cursor"`
			Items  []itemNode `json:"items"`
		} `json:"next_items_page"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to fetch next items page: %w", err)
	}

	records := make([]RawRecord, 0, len(resp.NextItemsPage.Items))
	for _, n := range resp.NextItemsPage.Items {
		records = append(records, n.toRecord())
	}
	return records, resp.NextItemsPage.Cursor, nil
}
