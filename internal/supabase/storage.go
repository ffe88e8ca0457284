package supabase

import (
	"bytes"
	"context"
	"net/http"
)

// Upload stores a binary object under bucket/path. The path is expected
// to be namespaced by the caller to avoid collisions.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/storage/v1/object/"+bucket+"/"+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, nil)
}

// PublicURL returns the unauthenticated retrieval URL for an object in a
// public bucket. No request is made; the URL shape is part of the
// storage API contract.
func (c *Client) PublicURL(bucket, path string) string {
	return c.url + "/storage/v1/object/public/" + bucket + "/" + path
}
