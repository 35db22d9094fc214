// Package guerrilla implements the Guerrilla Mail ajax API client.
package guerrilla

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"tempmail-pro/models"
)

const (
	Name           = "guerrillamail"
	defaultBaseURL = "https://api.guerrillamail.com/ajax.php"
)

// Domains Guerrilla Mail can mint addresses under. The service rotates the
// address across these, so the list is static.
var domains = []string{"grr.la", "sharklasers.com", "guerrillamail.net", "guerrillamail.com"}

// Client talks to the Guerrilla Mail ajax endpoint. Every call carries an
// incrementing salt so intermediate caches never replay a response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	salt       atomic.Int64
}

// New returns a client. baseURL overrides the production endpoint, for tests.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{httpClient: httpClient, baseURL: baseURL}
	c.salt.Store(time.Now().UnixMilli())
	return c
}

func (c *Client) Name() string { return Name }

func (c *Client) Domains(ctx context.Context) ([]string, error) {
	out := make([]string, len(domains))
	copy(out, domains)
	return out, nil
}

// CreateAddress requests a fresh address. The sid_token in the response is
// the inbox credential. If the salted request comes back malformed, a single
// unsalted retry matches what the service expects from older clients.
func (c *Client) CreateAddress(ctx context.Context, domain string) (models.Address, error) {
	params := url.Values{
		"f": {"get_email_address"},
		"t": {strconv.FormatInt(c.salt.Add(1), 10)},
	}
	if domain != "" {
		params.Set("site", domain)
	}

	var resp addressResponse
	if err := c.get(ctx, params, &resp); err != nil {
		params.Del("t")
		if retryErr := c.get(ctx, params, &resp); retryErr != nil {
			return models.Address{}, errors.Wrap(err, "guerrillamail: creating address")
		}
	}
	if resp.EmailAddr == "" || resp.SidToken == "" {
		return models.Address{}, errors.New("guerrillamail: response missing email_addr or sid_token")
	}

	return models.Address{
		Email:     resp.EmailAddr,
		Provider:  Name,
		Token:     resp.SidToken,
		CreatedAt: time.Now(),
	}, nil
}

func (c *Client) ListMessages(ctx context.Context, token string) ([]models.MessageSummary, error) {
	params := url.Values{
		"f":         {"get_email_list"},
		"sid_token": {token},
		"offset":    {"0"},
	}

	var resp listResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, errors.Wrap(err, "guerrillamail: listing messages")
	}

	summaries := make([]models.MessageSummary, 0, len(resp.List))
	for _, m := range resp.List {
		summaries = append(summaries, m.toSummary())
	}
	return summaries, nil
}

func (c *Client) FetchMessage(ctx context.Context, token, id string) (models.Message, error) {
	params := url.Values{
		"f":         {"fetch_email"},
		"sid_token": {token},
		"email_id":  {id},
	}

	var resp fetchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return models.Message{}, errors.Wrapf(err, "guerrillamail: fetching message %s", id)
	}
	return resp.toMessage(), nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", "TempMailPro/3.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://guerrillamail.com/")

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
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decoding response")
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
