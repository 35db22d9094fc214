// Package mailtm implements the Mail.tm client. Mail.gw runs the same
// Hydra-style JSON API, so that provider reuses this client under its own
// name and base URL.
package mailtm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"

	"tempmail-pro/models"
)

const (
	Name           = "mailtm"
	defaultBaseURL = "https://api.mail.tm"
)

// Client talks to a Hydra-style temp-mail API (Mail.tm, Mail.gw). Accounts
// are created with a random local part and password; the bearer token from
// /token is the inbox credential.
type Client struct {
	httpClient *http.Client
	baseURL    string
	name       string

	mu      sync.Mutex
	domains []string // fetched once, then cached
}

// New returns a Mail.tm client. baseURL overrides the production endpoint,
// for tests.
func New(httpClient *http.Client, baseURL string) *Client {
	return NewNamed(httpClient, baseURL, Name)
}

// NewNamed returns a client for any service speaking the same API.
func NewNamed(httpClient *http.Client, baseURL, name string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, name: name}
}

func (c *Client) Name() string { return c.name }

// Domains fetches the service's active domains once and caches them.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.domains == nil {
		var resp hydraDomains
		if err := c.do(ctx, http.MethodGet, "/domains", "", nil, &resp); err != nil {
			return nil, errors.Wrapf(err, "%s: fetching domains", c.name)
		}
		domains := make([]string, 0, len(resp.Member))
		for _, d := range resp.Member {
			domains = append(domains, d.Domain)
		}
		c.domains = domains
	}

	out := make([]string, len(c.domains))
	copy(out, c.domains)
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, domain string) (models.Address, error) {
	if domain == "" {
		domains, err := c.Domains(ctx)
		if err != nil {
			return models.Address{}, err
		}
		if len(domains) == 0 {
			return models.Address{}, errors.Errorf("%s: no domains available", c.name)
		}
		domain = domains[rand.Intn(len(domains))]
	}

	email := utility.MakeRandomString(5) + "@" + domain
	password := utility.MakeRandomString(6)
	creds := accountRequest{Address: email, Password: password}

	if err := c.do(ctx, http.MethodPost, "/accounts", "", creds, nil); err != nil {
		return models.Address{}, errors.Wrapf(err, "%s: creating account", c.name)
	}

	var tok tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token", "", creds, &tok); err != nil {
		return models.Address{}, errors.Wrapf(err, "%s: requesting token", c.name)
	}
	if tok.Token == "" {
		return models.Address{}, errors.Errorf("%s: token response missing token", c.name)
	}

	return models.Address{
		Email:     email,
		Provider:  c.name,
		Token:     tok.Token,
		CreatedAt: time.Now(),
	}, nil
}

func (c *Client) ListMessages(ctx context.Context, token string) ([]models.MessageSummary, error) {
	var resp hydraMessages
	if err := c.do(ctx, http.MethodGet, "/messages", token, nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "%s: listing messages", c.name)
	}

	summaries := make([]models.MessageSummary, 0, len(resp.Member))
	for _, m := range resp.Member {
		summaries = append(summaries, m.toSummary())
	}
	return summaries, nil
}

func (c *Client) FetchMessage(ctx context.Context, token, id string) (models.Message, error) {
	var resp messageDetail
	if err := c.do(ctx, http.MethodGet, "/messages/"+id, token, nil, &resp); err != nil {
		return models.Message{}, errors.Wrapf(err, "%s: fetching message %s", c.name, id)
	}
	return resp.toMessage(), nil
}

// do performs one JSON round trip. token, payload, and out are each optional.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshalling request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decoding response")
		}
	}
	return nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
