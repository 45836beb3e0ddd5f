package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"roamcms/internal/models"
)

type articleList struct {
	Items []models.Article `json:"items"`
	Total int              `json:"total"`
}

func (c *Client) ListArticles(ctx context.Context, f Filter) ([]models.Article, int, error) {
	var out articleList
	if err := c.do(ctx, http.MethodGet, "/travel-magazine", f.values(), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

func (c *Client) GetArticleByTitle(ctx context.Context, title string) (*models.Article, error) {
	var out models.Article
	if err := c.do(ctx, http.MethodGet, "/travel-magazine/"+url.PathEscape(title), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	var out models.Article
	if err := c.do(ctx, http.MethodPost, "/travel-magazine", nil, article, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	var out models.Article
	path := fmt.Sprintf("/travel-magazine/%d", article.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, article, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/travel-magazine/%d", id), nil, nil, nil)
}
