// Package dropmail implements the DropMail.me GraphQL client.
package dropmail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"

	"tempmail-pro/models"
)

const (
	Name           = "dropmail"
	defaultBaseURL = "https://dropmail.me/api/graphql/"
)

const introduceSessionQuery = `
mutation {
  introduceSession {
    id
    expiresAt
    addresses {
      address
    }
  }
}`

const sessionMailsQuery = `
query($id: ID!){
  session(id: $id){
    mails{
      id
      fromAddr
      headerSubject
      text
      receivedAt
    }
  }
}`

// Client talks to the DropMail GraphQL endpoint. The API is keyed by a
// caller-chosen token appended to the URL; the session id comes back from
// introduceSession. Both are needed to read mail, so the stored credential
// is "<apiToken>|<sessionID>".
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a client. baseURL overrides the production endpoint, for tests.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

func (c *Client) Name() string { return Name }

// Domains are assigned per session by the service; only the primary is
// advertised.
func (c *Client) Domains(ctx context.Context) ([]string, error) {
	return []string{"dropmail.me"}, nil
}

// CreateAddress opens a new session. The domain argument is ignored: DropMail
// picks the domain itself.
func (c *Client) CreateAddress(ctx context.Context, domain string) (models.Address, error) {
	apiToken := utility.MakeRandomString(6)

	var resp introduceSessionResponse
	if err := c.post(ctx, apiToken, introduceSessionQuery, nil, &resp); err != nil {
		return models.Address{}, errors.Wrap(err, "dropmail: creating session")
	}
	sess := resp.IntroduceSession
	if sess.ID == "" || len(sess.Addresses) == 0 {
		return models.Address{}, errors.New("dropmail: session response missing id or address")
	}

	return models.Address{
		Email:     sess.Addresses[0].Address,
		Provider:  Name,
		Token:     apiToken + "|" + sess.ID,
		CreatedAt: time.Now(),
	}, nil
}

func (c *Client) ListMessages(ctx context.Context, token string) ([]models.MessageSummary, error) {
	mails, err := c.sessionMails(ctx, token)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.MessageSummary, 0, len(mails))
	for _, m := range mails {
		summaries = append(summaries, m.toSummary())
	}
	return summaries, nil
}

// FetchMessage re-queries the session; the mail list already carries the
// full text, so the fetch is a filter by id.
func (c *Client) FetchMessage(ctx context.Context, token, id string) (models.Message, error) {
	mails, err := c.sessionMails(ctx, token)
	if err != nil {
		return models.Message{}, err
	}
	for _, m := range mails {
		if m.ID == id {
			return m.toMessage(), nil
		}
	}
	return models.Message{}, errors.Errorf("dropmail: message %s not found", id)
}

// sessionMails returns the session's mail list. An absent session means it
// expired server-side, which reads as an empty inbox rather than an error.
func (c *Client) sessionMails(ctx context.Context, token string) ([]mailEntry, error) {
	apiToken, sessionID, err := splitToken(token)
	if err != nil {
		return nil, err
	}

	var resp sessionResponse
	if err := c.post(ctx, apiToken, sessionMailsQuery, map[string]string{"id": sessionID}, &resp); err != nil {
		return nil, errors.Wrap(err, "dropmail: querying session")
	}
	if resp.Session == nil {
		return nil, nil
	}
	return resp.Session.Mails, nil
}

func (c *Client) post(ctx context.Context, apiToken, query string, variables interface{}, out interface{}) error {
	payload := gqlRequest{Query: query, Variables: variables}
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshalling query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiToken, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

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

	var envelope gqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	if len(envelope.Errors) > 0 {
		return errors.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrap(err, "decoding data")
	}
	return nil
}

func splitToken(token string) (apiToken, sessionID string, err error) {
	parts := strings.SplitN(token, "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("dropmail: malformed token")
	}
	return parts[0], parts[1], nil
}
