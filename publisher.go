package docgram

import "context"

// Credentials is the opaque bundle required by the publishing platform.
// Supplied via out-of-band configuration; never derived or cached.
type Credentials struct {
	UserID      string
	AccessToken string
}

// Validate returns an error if the credentials are incomplete.
func (c *Credentials) Validate() error {
	if c.UserID == "" {
		return Errorf(EINVALID, "publisher user ID required")
	}
	if c.AccessToken == "" {
		return Errorf(EINVALID, "publisher access token required")
	}
	return nil
}

// PublishResult reports a completed two-phase publish.
type PublishResult struct {
	RemoteID string
}

// Publisher performs the two-phase publish against the external platform:
// stage a remote container referencing the hosted asset, then commit it to
// make it live. Failures carry phase granularity (EPUBLISHSTAGE vs
// EPUBLISHCOMMIT) so callers never assume a partial publish is safe to
// silently re-attempt from phase one.
//
// The asset must already be durably retrievable at assetURL before Publish
// is called.
type Publisher interface {
	Publish(ctx context.Context, assetURL string, caption string) (*PublishResult, error)
}
