// Package fs provides a directory-backed asset host. The directory is
// expected to be made publicly retrievable by an external collaborator
// (static file hosting, or a version-controlled repository that gets
// pushed); the host only guarantees the local write is durable and the
// returned URL is stable.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/mkowalik/docgram"
)

// Ensure Host implements docgram.AssetHost at compile time.
var _ docgram.AssetHost = (*Host)(nil)

// Host writes rendered assets into a directory and maps them to URLs under
// a public base URL.
type Host struct {
	dir     string
	baseURL string
}

// NewHost creates a Host writing into dir. baseURL is the public prefix
// under which the directory's contents are retrievable.
func NewHost(dir string, baseURL string) *Host {
	return &Host{dir: dir, baseURL: baseURL}
}

// Store writes the asset under its stable name and returns its public URL.
// The write goes through a temporary file and rename so a crash never
// leaves a half-written asset at the stable name.
func (h *Host) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		return "", docgram.Errorf(docgram.EINVALID, "asset name required")
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", err
	}

	target := filepath.Join(h.dir, name)
	tmp, err := os.CreateTemp(h.dir, name+".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return h.publicURL(name)
}

// publicURL joins the base URL with the asset name.
func (h *Host) publicURL(name string) (string, error) {
	base, err := url.Parse(h.baseURL)
	if err != nil {
		return "", docgram.Errorf(docgram.EINVALID, "invalid base URL %q: %v", h.baseURL, err)
	}
	base.Path = path.Join(base.Path, name)
	return base.String(), nil
}
