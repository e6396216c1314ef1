package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.twilio.com/2010-04-01"

// Account is the subset of the Twilio account resource the status
// endpoint reports.
type Account struct {
	SID          string `json:"sid"`
	FriendlyName string `json:"friendly_name"`
	Status       string `json:"status"`
}

// Client is a minimal Twilio REST client. It only fetches the account
// resource; replies go back in-band as TwiML, so no send API is needed.
type Client struct {
	client      *http.Client
	accountSID  string
	authToken   string
	phoneNumber string
	baseURL     string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Twilio endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Twilio client. Empty credentials are allowed;
// FetchAccount will fail and the status endpoint reports the error
// in-band instead of crashing.
func NewClient(accountSID, authToken, phoneNumber string, opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: 10 * time.Second},
		accountSID:  accountSID,
		authToken:   authToken,
		phoneNumber: phoneNumber,
		baseURL:     defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PhoneNumber returns the configured outbound number.
func (c *Client) PhoneNumber() string {
	return c.phoneNumber
}

// FetchAccount retrieves the account resource with basic auth. A 2xx
// response proves the credential is valid.
func (c *Client) FetchAccount(ctx context.Context) (*Account, error) {
	if c.accountSID == "" || c.authToken == "" {
		return nil, fmt.Errorf("twilio credentials are not configured")
	}

	url := fmt.Sprintf("%s/Accounts/%s.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("invalid Twilio credentials")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twilio API error: %s", resp.Status)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode Twilio response: %w", err)
	}

	return &account, nil
}
