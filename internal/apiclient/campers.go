package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"roamcms/internal/models"
)

// Filter narrows a listing request. Zero values are omitted from the
// query string.
type Filter struct {
	Query    string
	Category string
	Status   string
	Page     int
	PageSize int
}

func (f Filter) values() url.Values {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	return q
}

type camperList struct {
	Items []models.Camper `json:"items"`
	Total int             `json:"total"`
}

func (c *Client) ListCampers(ctx context.Context, f Filter) ([]models.Camper, int, error) {
	var out camperList
	if err := c.do(ctx, http.MethodGet, "/campers", f.values(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// GetCamperByTitle looks one listing up by its title, the key the
// marketplace routes on (slugs reverse to titles before lookup).
func (c *Client) GetCamperByTitle(ctx context.Context, title string) (*models.Camper, error) {
	var out models.Camper
	if err := c.do(ctx, http.MethodGet, "/campers/"+url.PathEscape(title), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCamper(ctx context.Context, camper *models.Camper) (*models.Camper, error) {
	var out models.Camper
	if err := c.do(ctx, http.MethodPost, "/campers", nil, camper, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCamper(ctx context.Context, camper *models.Camper) (*models.Camper, error) {
	var out models.Camper
	path := fmt.Sprintf("/campers/%d", camper.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, camper, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCamper(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/campers/%d", id), nil, nil, nil)
}
