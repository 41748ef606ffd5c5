package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/roostlabs/roost/internal/listing"
)

// postPayload is the flat wire form of a listing. The author snapshot is
// excluded; the broker assigns authorship from authorId.
type postPayload struct {
	Title            string               `json:"title"`
	Price            int                  `json:"price"`
	Location         string               `json:"location"`
	Neighborhood     string               `json:"neighborhood"`
	Lat              float64              `json:"lat"`
	Lng              float64              `json:"lng"`
	Radius           int                  `json:"radius"`
	Type             listing.PropertyType `json:"type"`
	ImageURL         string               `json:"imageUrl"`
	AdditionalImages []string             `json:"additionalImages"`
	Description      string               `json:"description"`
	Bedrooms         int                  `json:"bedrooms"`
	Bathrooms        int                  `json:"bathrooms"`
	AvailableFrom    int64                `json:"availableFrom"`
	AvailableTo      int64                `json:"availableTo"`
	AuthorID         int64                `json:"authorId"`
}

func toPayload(post listing.Listing, authorID int64) postPayload {
	images := post.AdditionalImages
	if images == nil {
		images = []string{}
	}
	return postPayload{
		Title:            post.Title,
		Price:            post.Price,
		Location:         post.Location,
		Neighborhood:     post.Neighborhood,
		Lat:              post.Coordinates.Lat,
		Lng:              post.Coordinates.Lng,
		Radius:           post.Radius,
		Type:             post.Type,
		ImageURL:         post.ImageURL,
		AdditionalImages: images,
		Description:      post.Description,
		Bedrooms:         post.Bedrooms,
		Bathrooms:        post.Bathrooms,
		AvailableFrom:    post.AvailableFrom,
		AvailableTo:      post.AvailableTo,
		AuthorID:         authorID,
	}
}

// FetchPosts retrieves the full listing collection.
func (c *Client) FetchPosts(ctx context.Context) ([]listing.Listing, error) {
	data, err := c.do(ctx, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}
	var posts []listing.Listing
	if len(data) > 0 {
		if err := json.Unmarshal(data, &posts); err != nil {
			return nil, fmt.Errorf("decode posts: %w", err)
		}
	}
	return posts, nil
}

// CreatePost creates a listing and returns the broker's record, which
// carries the assigned ID and authoritative author snapshot.
func (c *Client) CreatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error) {
	data, err := c.do(ctx, http.MethodPost, "/posts", toPayload(post, authorID))
	if err != nil {
		return nil, err
	}
	return decodePost(data)
}

// UpdatePost replaces the listing record identified by its numeric ID.
func (c *Client) UpdatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error) {
	id, ok := post.NumericID()
	if !ok {
		return nil, fmt.Errorf("listing id %q is not a broker post id", post.ID)
	}
	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), toPayload(post, authorID))
	if err != nil {
		return nil, err
	}
	return decodePost(data)
}

// DeletePost removes a listing. The body carries authorId so the broker can
// authorize the delete.
func (c *Client) DeletePost(ctx context.Context, id int64, authorID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), map[string]int64{"authorId": authorID})
	return err
}

func decodePost(data json.RawMessage) (*listing.Listing, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("response carried no post")
	}
	var post listing.Listing
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("decode post: %w", err)
	}
	return &post, nil
}
