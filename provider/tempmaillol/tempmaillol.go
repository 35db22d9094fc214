// Package tempmaillol implements the TempMail.lol client. The service
// delivers each message once and assigns no ids, so the client keeps every
// message it has seen per token and numbers them in arrival order.
package tempmaillol

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"tempmail-pro/models"
)

const (
	Name           = "tempmaillol"
	defaultBaseURL = "https://api.tempmail.lol"
)

// Client talks to the TempMail.lol REST endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu sync.Mutex
	// seen holds every message observed for a token, in arrival order.
	// Slice index is the message id.
	seen map[string][]models.Message
}

// New returns a client. baseURL overrides the production endpoint, for tests.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		seen:       map[string][]models.Message{},
	}
}

func (c *Client) Name() string { return Name }

// Domains are minted per address by the service.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	return []string{"tempmail.lol"}, nil
}

// CreateAddress uses the rush pool, which allocates fastest.
func (c *Client) CreateAddress(ctx context.Context, domain string) (models.Address, error) {
	var resp generateResponse
	if err := c.get(ctx, "/generate/rush", &resp); err != nil {
		return models.Address{}, errors.Wrap(err, "tempmaillol: generating address")
	}
	if resp.Address == "" || resp.Token == "" {
		return models.Address{}, errors.New("tempmaillol: response missing address or token")
	}

	return models.Address{
		Email:     resp.Address,
		Provider:  Name,
		Token:     resp.Token,
		CreatedAt: time.Now(),
	}, nil
}

// ListMessages merges the live inbox into the retained set and returns
// everything ever seen for the token.
func (c *Client) ListMessages(ctx context.Context, token string) ([]models.MessageSummary, error) {
	if err := c.sync(ctx, token); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	retained := c.seen[token]
	summaries := make([]models.MessageSummary, 0, len(retained))
	for _, m := range retained {
		summaries = append(summaries, m.MessageSummary)
	}
	return summaries, nil
}

// FetchMessage serves from the retained set, syncing once if the id is not
// yet known.
func (c *Client) FetchMessage(ctx context.Context, token, id string) (models.Message, error) {
	index, err := strconv.Atoi(id)
	if err != nil || index < 0 {
		return models.Message{}, errors.Errorf("tempmaillol: malformed message id %q", id)
	}

	c.mu.Lock()
	retained := c.seen[token]
	c.mu.Unlock()

	if index >= len(retained) {
		if err := c.sync(ctx, token); err != nil {
			return models.Message{}, err
		}
		c.mu.Lock()
		retained = c.seen[token]
		c.mu.Unlock()
	}
	if index >= len(retained) {
		return models.Message{}, errors.Errorf("tempmaillol: message %s not found", id)
	}
	return retained[index], nil
}

// sync pulls the live inbox and appends messages not seen before. The
// service re-serves undelivered messages, so identity is content-based.
func (c *Client) sync(ctx context.Context, token string) error {
	var resp authResponse
	if err := c.get(ctx, "/auth/"+token, &resp); err != nil {
		return errors.Wrap(err, "tempmaillol: checking inbox")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	retained := c.seen[token]
	for _, incoming := range resp.Email {
		msg := incoming.toMessage()
		if containsMessage(retained, msg) {
			continue
		}
		msg.ID = strconv.Itoa(len(retained))
		retained = append(retained, msg)
	}
	c.seen[token] = retained
	return nil
}

func containsMessage(retained []models.Message, msg models.Message) bool {
	for _, m := range retained {
		if m.From == msg.From && m.Subject == msg.Subject && m.Body == msg.Body {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return errors.Wrap(json.Unmarshal(body, out), "decoding response")
}
