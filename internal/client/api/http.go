package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient talks JSON-over-HTTPS to the forum backend and to the version
// descriptor host. It is safe for use from a single goroutine per screen;
// requests carry the caller's context for cancellation.
type HTTPClient struct {
	baseURL    string
	versionURL string
	hc         *http.Client
}

// NewHTTPClient returns a client rooted at baseURL (the forum origin,
// without a trailing slash) that reads the version descriptor from
// versionURL. A zero timeout disables the client-level deadline; callers
// then rely on context deadlines alone.
func NewHTTPClient(baseURL, versionURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		versionURL: versionURL,
		hc:         &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %w", ErrProtocol, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrProtocol, err)
	}
	return nil
}

// Login implements Client.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}

	var resp struct {
		Success bool   `json:"success"`
		User    *User  `json:"user"`
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/auth.php", body, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsRejected, resp.Message)
		}
		return nil, ErrCredentialsRejected
	}
	// success:true without a user record is a backend bug, not a rejection
	if resp.User == nil || resp.User.ID == "" {
		return nil, fmt.Errorf("%w: success response without user record", ErrProtocol)
	}
	return resp.User, nil
}

// VerifyQR implements Client. Both accepted and rejected redemptions are
// normal results; only malformed responses are errors.
func (c *HTTPClient) VerifyQR(ctx context.Context, token, userID string) (*VerifyResult, error) {
	body := map[string]string{"qr_token": token, "user_id": userID}

	var result VerifyResult
	if err := c.postJSON(ctx, c.baseURL+"/qr_verify.php", body, &result); err != nil {
		return nil, err
	}
	if result.Message == "" {
		return nil, fmt.Errorf("%w: redemption response without message", ErrProtocol)
	}
	return &result, nil
}

// FetchLabs implements Client.
func (c *HTTPClient) FetchLabs(ctx context.Context) (*LabsContent, error) {
	var content LabsContent
	if err := c.getJSON(ctx, c.baseURL+"/labs.json", &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// LatestVersion implements Client. The descriptor schema is fixed to
// {"version": "..."}; the nested {"expo":{"version":...}} shape some old
// descriptors used is rejected as a protocol error.
func (c *HTTPClient) LatestVersion(ctx context.Context) (string, error) {
	var desc struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, c.versionURL, &desc); err != nil {
		return "", err
	}
	if desc.Version == "" {
		return "", fmt.Errorf("%w: descriptor has no top-level version field", ErrProtocol)
	}
	return desc.Version, nil
}

// ListConversations implements Client.
func (c *HTTPClient) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	q := url.Values{}
	q.Set("action", "list_all")
	q.Set("user_id", userID)

	var resp struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/messages.php?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Conversations == nil {
		return []Conversation{}, nil
	}
	return resp.Conversations, nil
}

// FetchMessages implements Client. Unlike the conversation list, this
// endpoint returns a bare array; the asymmetry is part of the wire contract.
func (c *HTTPClient) FetchMessages(ctx context.Context, conversationID string) ([]Message, error) {
	q := url.Values{}
	q.Set("action", "fetch_messages")
	q.Set("conversation_id", conversationID)

	var messages []Message
	if err := c.getJSON(ctx, c.baseURL+"/messages.php?"+q.Encode(), &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

// Close implements Client.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}
