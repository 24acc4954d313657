package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/varadpoddar/blog-services/internal/models"
)

// APIError is a non-2xx answer from the posts API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("posts api: %d: %s", e.Status, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type PostsAPI interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, title, content string) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// Client calls the posts API once per operation with a fixed timeout and
// never retries.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(base string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("blog api base: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("blog api base %q must be an absolute URL", base)
	}

	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

type postBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, c.base.JoinPath("posts"), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, c.postURL(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Create(ctx context.Context, title, content string) (*models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPost, c.base.JoinPath("posts"), postBody{Title: title, Content: content}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPut, c.postURL(id), postBody{Title: title, Content: content}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.postURL(id), nil, nil)
}

func (c *Client) postURL(id int64) *url.URL {
	return c.base.JoinPath("posts", strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posts api unreachable: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("posts api read: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Message: errorMessage(res, raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("posts api returned invalid JSON: %w", err)
	}
	return nil
}

// errorMessage prefers the JSON "message" field, then "error", then the
// raw body text.
func errorMessage(res *http.Response, raw []byte) string {
	mediaType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			if body.Message != "" {
				return body.Message
			}
			if body.Error != "" {
				return body.Error
			}
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return http.StatusText(res.StatusCode)
}
