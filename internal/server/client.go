package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// Client is a store.LessonRepo backed by a running lessbuilder server.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ store.LessonRepo = (*Client)(nil)

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Get(ctx context.Context) (*lesson.Lesson, error) {
	var out lessonResponse
	if err := c.do(ctx, http.MethodGet, nil, &out); err != nil {
		return nil, fmt.Errorf("get remote lesson: %w", err)
	}
	return out.Lesson, nil
}

func (c *Client) Put(ctx context.Context, l *lesson.Lesson) error {
	body, err := lesson.EncodeJSON(l)
	if err != nil {
		return err
	}
	return c.save(ctx, http.MethodPost, body)
}

func (c *Client) Clear(ctx context.Context) error {
	return c.save(ctx, http.MethodDelete, nil)
}

func (c *Client) save(ctx context.Context, method string, body []byte) error {
	var out saveResponse
	err := c.do(ctx, method, body, &out)
	if err != nil && out.Error == "" {
		return fmt.Errorf("save remote lesson: %w", err)
	}
	if !out.Success {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", lesson.ErrInvalid, out.Error)
		}
		return fmt.Errorf("save remote lesson: %s", out.Error)
	}
	return nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.code, http.StatusText(e.code))
}

// do sends one request to /api/lesson and decodes the JSON reply into out.
// A non-2xx status is returned as an error after out has been decoded.
func (c *Client) do(ctx context.Context, method string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/lesson", bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(resp.Body).Decode(out)
	if resp.StatusCode/100 != 2 {
		return &statusError{code: resp.StatusCode}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	return nil
}
