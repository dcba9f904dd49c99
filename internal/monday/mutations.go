package monday

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/machinebox/graphql"
)

// SetHighlight sets a status column to the given label.
// Monday's JSON scalar expects the column payload as a JSON-encoded string,
// e.g. {"label": "At risk"}.
func (c *Client) SetHighlight(ctx context.Context, boardID, itemID, columnID, label string) error {
	payload, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return fmt.Errorf("failed to encode highlight payload: %w", err)
	}
	return c.changeColumnValue(ctx, boardID, itemID, columnID, string(payload))
}

// ClearHighlight resets a status column to its empty state.
func (c *Client) ClearHighlight(ctx context.Context, boardID, itemID, columnID string) error {
	return c.changeColumnValue(ctx, boardID, itemID, columnID, "{}")
}

func (c *Client) changeColumnValue(ctx context.Context, boardID, itemID, columnID, value string) error {
	req := graphql.NewRequest(`
		mutation($boardID: ID!, $itemID: ID!, $columnID: String!, $value: JSON!) {
			change_column_value(
				board_id: $boardID,
				item_id: $itemID,
				column_id: $columnID,
				value: $value
			) {
				id
			}
		}
	`)
	req.Var("boardID", boardID)
	req.Var("itemID", itemID)
	req.Var("columnID", columnID)
	req.Var("value", value)

	var resp struct {
		ChangeColumnValue struct {
			ID string `json:"id"`
		} `json:"change_column_value"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return fmt.Errorf("failed to change column value: %w", err)
	}
	return nil
}

// CreateItem creates a new item in a board group and returns its id.
func (c *Client) CreateItem(ctx context.Context, boardID, groupID, name string) (string, error) {
	req := graphql.NewRequest(`
		mutation($boardID: ID!, $groupID: String!, $name: String!) {
			create_item(board_id: $boardID, group_id: $groupID, item_name: $name) {
				id
			}
		}
	`)
	req.Var("boardID", boardID)
	req.Var("groupID", groupID)
	req.Var("name", name)

	var resp struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to create item: %w", err)
	}
	if resp.CreateItem.ID == "" {
		return "", fmt.Errorf("create_item returned no id")
	}
	return resp.CreateItem.ID, nil
}

// RenameItem renames an existing item via change_multiple_column_values,
// which is the only mutation that can set the built-in name column.
func (c *Client) RenameItem(ctx context.Context, boardID, itemID, name string) error {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return fmt.Errorf("failed to encode rename payload: %w", err)
	}

	req := graphql.NewRequest(`
		mutation($boardID: ID!, $itemID: ID!, $columnValues: JSON!) {
			change_multiple_column_values(
				board_id: $boardID,
				item_id: $itemID,
				column_values: $columnValues
			) {
				id
			}
		}
	`)
	req.Var("boardID", boardID)
	req.Var("itemID", itemID)
	req.Var("columnValues", string(payload))

	var resp struct {
		ChangeMultipleColumnValues struct {
			ID string `json:"id"`
		} `json:"change_multiple_column_values"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return fmt.Errorf("failed to rename item: %w", err)
	}
	return nil
}

// PostUpdate posts body text as an update on an item and returns the update id.
func (c *Client) PostUpdate(ctx context.Context, itemID, body string) (string, error) {
	req := graphql.NewRequest(`
		mutation($itemID: ID!, $body: String!) {
			create_update(item_id: $itemID, body: $body) {
				id
			}
		}
	`)
	req.Var("itemID", itemID)
	req.Var("body", body)

	var resp struct {
		CreateUpdate struct {
			ID string `json:"id"`
		} `json:"create_update"`
	}

	if err := c.makeRequest(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("failed to post update: %w", err)
	}
	return resp.CreateUpdate.ID, nil
}
