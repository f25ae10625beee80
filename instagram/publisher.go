// Package instagram implements the two-phase publish protocol of the
// Instagram Graph API: a media container is first created (staged) with the
// hosted image URL and caption, then published (committed) as a separate
// call. Staging is disposable — no staging identifier survives the run; a
// commit failure leaves the candidate unpublished and it is retried fresh
// on the next run.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkowalik/docgram"
)

// DefaultBaseURL is the Graph API endpoint prefix.
const DefaultBaseURL = "https://graph.facebook.com/v21.0"

// defaultTimeout bounds each Graph API call.
const defaultTimeout = 30 * time.Second

// Ensure Publisher implements docgram.Publisher at compile time.
var _ docgram.Publisher = (*Publisher)(nil)

// Publisher performs the stage/commit publish against the Graph API.
type Publisher struct {
	client  *http.Client
	baseURL string
	creds   docgram.Credentials
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithBaseURL overrides the Graph API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(p *Publisher) {
		p.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Publisher) {
		p.client = c
	}
}

// NewPublisher creates a Publisher for the given credentials.
func NewPublisher(creds docgram.Credentials, opts ...Option) (*Publisher, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	p := &Publisher{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: DefaultBaseURL,
		creds:   creds,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// apiResponse is the shape of both success and error Graph API replies.
type apiResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Publish stages a media container for the hosted asset, then commits it.
// Phase failures carry distinct codes (EPUBLISHSTAGE, EPUBLISHCOMMIT) with
// the remote-supplied reason, so callers can tell which phase failed.
func (p *Publisher) Publish(ctx context.Context, assetURL string, caption string) (*docgram.PublishResult, error) {
	if assetURL == "" {
		return nil, docgram.Errorf(docgram.EINVALID, "asset URL required")
	}

	containerID, err := p.stage(ctx, assetURL, caption)
	if err != nil {
		return nil, err
	}

	remoteID, err := p.commit(ctx, containerID)
	if err != nil {
		return nil, err
	}

	return &docgram.PublishResult{RemoteID: remoteID}, nil
}

// stage creates the media container referencing the hosted asset.
func (p *Publisher) stage(ctx context.Context, assetURL string, caption string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", p.baseURL, p.creds.UserID)
	form := url.Values{
		"image_url":    {assetURL},
		"caption":      {caption},
		"access_token": {p.creds.AccessToken},
	}

	resp, err := p.post(ctx, endpoint, form)
	if err != nil {
		return "", docgram.Errorf(docgram.EPUBLISHSTAGE, "staging media container: %v", err)
	}
	if resp.Error != nil {
		return "", docgram.Errorf(docgram.EPUBLISHSTAGE, "staging media container: %s", resp.Error.Message)
	}
	if resp.ID == "" {
		return "", docgram.Errorf(docgram.EPUBLISHSTAGE, "staging media container: no container ID in response")
	}
	return resp.ID, nil
}

// commit makes the staged container live.
func (p *Publisher) commit(ctx context.Context, containerID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", p.baseURL, p.creds.UserID)
	form := url.Values{
		"creation_id":  {containerID},
		"access_token": {p.creds.AccessToken},
	}

	resp, err := p.post(ctx, endpoint, form)
	if err != nil {
		return "", docgram.Errorf(docgram.EPUBLISHCOMMIT, "committing container %s: %v", containerID, err)
	}
	if resp.Error != nil {
		return "", docgram.Errorf(docgram.EPUBLISHCOMMIT, "committing container %s: %s", containerID, resp.Error.Message)
	}
	if resp.ID == "" {
		return "", docgram.Errorf(docgram.EPUBLISHCOMMIT, "committing container %s: no media ID in response", containerID)
	}
	return resp.ID, nil
}

// post sends a form-encoded POST and decodes the Graph API reply. Transport
// errors are returned raw; the caller attaches the phase code.
func (p *Publisher) post(ctx context.Context, endpoint string, form url.Values) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("HTTP %d: undecodable response", resp.StatusCode)
	}
	return &decoded, nil
}
