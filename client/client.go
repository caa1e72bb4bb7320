// Package client is a typed HTTP client for the newsapi REST service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SergeyParamoshkin/newsapi/internal/model"
	"github.com/go-chi/render"
)

type Client struct {
	http.Client
	Addr string
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("newsapi: %d %s", e.Status, e.Message)
}

// ArticlesQuery holds the optional list filters. Empty fields are not sent.
type ArticlesQuery struct {
	Topic  string
	SortBy string
	Order  string
}

func (q ArticlesQuery) values() url.Values {
	v := url.Values{}
	if q.Topic != "" {
		v.Set("topic", q.Topic)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}

	return v
}

func (c *Client) Endpoints(ctx context.Context) (map[string]json.RawMessage, error) {
	var out map[string]json.RawMessage

	return out, c.do(ctx, http.MethodGet, "/api", nil, nil, &out)
}

func (c *Client) Topics(ctx context.Context) ([]model.Topic, error) {
	var out struct {
		Topics []model.Topic `json:"topics"`
	}
	err := c.do(ctx, http.MethodGet, "/api/topics", nil, nil, &out)

	return out.Topics, err
}

func (c *Client) Articles(ctx context.Context, q ArticlesQuery) ([]model.ArticleSummary, error) {
	var out struct {
		Articles []model.ArticleSummary `json:"articles"`
	}
	err := c.do(ctx, http.MethodGet, "/api/articles", q.values(), nil, &out)

	return out.Articles, err
}

func (c *Client) Article(ctx context.Context, id int) (*model.Article, error) {
	var out struct {
		Article *model.Article `json:"article"`
	}
	err := c.do(ctx, http.MethodGet, "/api/articles/"+strconv.Itoa(id), nil, nil, &out)

	return out.Article, err
}

// VoteArticle adds inc (which may be negative) to the article votes.
func (c *Client) VoteArticle(ctx context.Context, id, inc int) (*model.Article, error) {
	var out struct {
		Article *model.Article `json:"article"`
	}
	in := map[string]int{"inc_votes": inc}
	err := c.do(ctx, http.MethodPatch, "/api/articles/"+strconv.Itoa(id), nil, in, &out)

	return out.Article, err
}

func (c *Client) Comments(ctx context.Context, articleID int) ([]model.Comment, error) {
	var out struct {
		Comments []model.Comment `json:"comments"`
	}
	err := c.do(ctx, http.MethodGet, "/api/articles/"+strconv.Itoa(articleID)+"/comments", nil, nil, &out)

	return out.Comments, err
}

func (c *Client) PostComment(ctx context.Context, articleID int, username, body string) (*model.Comment, error) {
	var out struct {
		Comment *model.Comment `json:"comment"`
	}
	in := map[string]string{"username": username, "body": body}
	err := c.do(ctx, http.MethodPost, "/api/articles/"+strconv.Itoa(articleID)+"/comments", nil, in, &out)

	return out.Comment, err
}

func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out)

	return out.Users, err
}

func (c *Client) User(ctx context.Context, username string) (*model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(username), nil, nil, &out)

	return out.User, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := c.Addr + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}

		var msg struct {
			Message string `json:"message"`
		}
		if err := render.DecodeJSON(resp.Body, &msg); err == nil {
			apiErr.Message = msg.Message
		}

		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return render.DecodeJSON(resp.Body, out)
}
