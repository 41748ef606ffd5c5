package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// FavoriteIDs retrieves the backend favorite set as listing-ID strings.
func (c *Client) FavoriteIDs(ctx context.Context, userID int64) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/favorites/%d/ids", userID), nil)
	if err != nil {
		return nil, err
	}
	return decodeIDs(data)
}

// AddFavorite marks a post as favorited for the user.
func (c *Client) AddFavorite(ctx context.Context, userID, postID int64) error {
	_, err := c.do(ctx, http.MethodPost, "/favorites", map[string]int64{
		"userId": userID,
		"postId": postID,
	})
	return err
}

// RemoveFavorite unmarks a favorited post.
func (c *Client) RemoveFavorite(ctx context.Context, userID, postID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d/%d", userID, postID), nil)
	return err
}

// SyncFavorites bulk-pushes the local favorite set and returns the canonical
// set the broker settled on.
func (c *Client) SyncFavorites(ctx context.Context, userID int64, postIDs []int64) ([]string, error) {
	if postIDs == nil {
		postIDs = []int64{}
	}
	data, err := c.do(ctx, http.MethodPost, "/favorites/sync", map[string]any{
		"userId":  userID,
		"postIds": postIDs,
	})
	if err != nil {
		return nil, err
	}
	return decodeIDs(data)
}

func decodeIDs(data json.RawMessage) ([]string, error) {
	var ids []string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, fmt.Errorf("decode favorite ids: %w", err)
		}
	}
	return ids, nil
}
