package docgram

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// NormalizeLocator canonicalizes a document locator so that trivially
// equivalent URLs collapse to the same form: scheme and host are
// lower-cased, the fragment is stripped, default ports are removed, and a
// trailing slash is collapsed (except for the root path).
func NormalizeLocator(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "locator required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid locator %q: %v", raw, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// Strip default ports.
	if host, port, ok := strings.Cut(u.Host, ":"); ok {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			u.Host = host
		}
	}

	// Collapse trailing slash; keep "/" for the root path.
	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
	}

	return u.String(), nil
}

// Identity derives a stable, collision-resistant identifier from a
// normalized locator. Pure and deterministic: identical locators yield the
// identical identity across runs and process restarts. The digest is
// SHA-256, hex-encoded.
func Identity(normalizedLocator string) string {
	sum := sha256.Sum256([]byte(normalizedLocator))
	return hex.EncodeToString(sum[:])
}

// IsDocumentLocator reports whether a URL points directly at a document
// resource rather than a detail page, judged by extension or resource path
// shape.
func IsDocumentLocator(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	switch path.Ext(p) {
	case ".pdf":
		return true
	}
	return strings.Contains(p, "/system/files/") || strings.Contains(p, "/sites/default/files/")
}
