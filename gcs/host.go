// Package gcs provides a Cloud Storage-backed asset host for deployments
// where the rendered images must be retrievable without running a static
// file server.
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/mkowalik/docgram"
	"google.golang.org/api/googleapi"
)

// Ensure Host implements docgram.AssetHost at compile time.
var _ docgram.AssetHost = (*Host)(nil)

// Host writes rendered assets to a Cloud Storage bucket and returns their
// public object URLs. Objects are written with an if-not-exists
// precondition: asset names are content-stable (document identity), so an
// existing object from a previous run is already the right bytes.
type Host struct {
	client *storage.Client
	bucket string
}

// NewHost creates a Host writing into the named bucket.
func NewHost(ctx context.Context, bucket string) (*Host, error) {
	if bucket == "" {
		return nil, docgram.Errorf(docgram.EINVALID, "bucket name required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &Host{client: client, bucket: bucket}, nil
}

// Store writes the asset and returns its public URL. A 412 precondition
// failure means the object already exists from a previous run, which is
// success for an idempotent pipeline.
func (h *Host) Store(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		return "", docgram.Errorf(docgram.EINVALID, "asset name required")
	}

	obj := h.client.Bucket(h.bucket).Object(name)
	w := obj.If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = "image/jpeg"

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		if isPreconditionFailed(err) {
			return h.publicURL(name), nil
		}
		return "", fmt.Errorf("writing object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		if isPreconditionFailed(err) {
			return h.publicURL(name), nil
		}
		return "", fmt.Errorf("finalizing object %s: %w", name, err)
	}

	return h.publicURL(name), nil
}

// Close releases the storage client.
func (h *Host) Close() error {
	return h.client.Close()
}

func (h *Host) publicURL(name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", h.bucket, name)
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 412
}
