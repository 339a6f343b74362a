// Package post talks to the GamePlay post API. The ingestion core never
// touches post records directly; it only requests status transitions
// through this boundary.
package post

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// Terminal statuses a post can reach after ingestion. The post record
// starts out as "processing", set by the upload flow.
const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// StatusClient reports the terminal outcome of one ingestion run.
type StatusClient interface {
	// SetPublished marks the post valid and records its public URL.
	SetPublished(ctx context.Context, postID, publicURL string) error
	// SetStatus marks the post invalid or error.
	SetStatus(ctx context.Context, postID, status string) error
}

// HTTPClient implements StatusClient against the post API. Requests are
// retried; a transient API hiccup should not surface as a lost status.
type HTTPClient struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &HTTPClient{baseURL: baseURL, client: client}
}

func (c *HTTPClient) SetPublished(ctx context.Context, postID, publicURL string) error {
	return c.patch(ctx, postID, map[string]string{
		"status":  StatusValid,
		"htmlUrl": publicURL,
	})
}

func (c *HTTPClient) SetStatus(ctx context.Context, postID, status string) error {
	return c.patch(ctx, postID, map[string]string{"status": status})
}

func (c *HTTPClient) patch(ctx context.Context, postID string, fields map[string]string) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(err, "failed to encode post update")
	}

	url := fmt.Sprintf("%s/posts/%s", c.baseURL, postID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create post update request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "post update request to '%s' failed", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("post update to '%s' returned status %d", url, resp.StatusCode)
	}
	return nil
}
