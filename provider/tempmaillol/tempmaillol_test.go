package tempmaillol

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService serves /generate/rush and /auth/<token>, with a swappable
// inbox payload so tests can simulate one-shot delivery.
type fakeService struct {
	mu    sync.Mutex
	inbox string
}

func (f *fakeService) setInbox(payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox = payload
}

func (f *fakeService) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/generate/rush":
			fmt.Fprint(w, `{"address":"rnd@tempmail.lol","token":"tok-1"}`)
		case r.URL.Path == "/auth/tok-1":
			f.mu.Lock()
			payload := f.inbox
			f.mu.Unlock()
			fmt.Fprintf(w, `{"email":%s}`, payload)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func TestCreateAddress(t *testing.T) {
	svc := &fakeService{inbox: "[]"}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	c := New(server.Client(), server.URL)

	addr, err := c.CreateAddress(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "rnd@tempmail.lol", addr.Email)
	assert.Equal(t, Name, addr.Provider)
	assert.Equal(t, "tok-1", addr.Token)
}

func TestListMessagesRetainsDelivered(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	c := New(server.Client(), server.URL)

	svc.setInbox(`[{"from":"x@y.z","subject":"first","body":"one"}]`)
	msgs, err := c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "0", msgs[0].ID)

	// The service delivers each message once; the retained copy survives.
	svc.setInbox(`[]`)
	msgs, err = c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "first", msgs[0].Subject)
}

func TestListMessagesAssignsSequentialIDs(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	c := New(server.Client(), server.URL)

	svc.setInbox(`[{"from":"x@y.z","subject":"first","body":"one"}]`)
	_, err := c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)

	svc.setInbox(`[{"from":"x@y.z","subject":"second","body":"two"}]`)
	msgs, err := c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, "0", msgs[0].ID)
	assert.Equal(t, "1", msgs[1].ID)
}

func TestListMessagesDeduplicatesReserved(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	c := New(server.Client(), server.URL)

	payload := `[{"from":"x@y.z","subject":"same","body":"body"}]`
	svc.setInbox(payload)
	_, err := c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)

	// The service re-serves undelivered mail; identical content is not
	// retained twice.
	msgs, err := c.ListMessages(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestFetchMessage(t *testing.T) {
	svc := &fakeService{}
	server := httptest.NewServer(svc.handler(t))
	defer server.Close()

	c := New(server.Client(), server.URL)

	svc.setInbox(`[{"from":"x@y.z","subject":"hi","body":"hello","html":"<p>hello</p>"}]`)

	// The id is not yet retained, so the fetch syncs once.
	msg, err := c.FetchMessage(context.Background(), "tok-1", "0")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Subject)

	_, err = c.FetchMessage(context.Background(), "tok-1", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFetchMessageMalformedID(t *testing.T) {
	c := New(http.DefaultClient, "")

	for _, id := range []string{"", "abc", "-1"} {
		_, err := c.FetchMessage(context.Background(), "tok-1", id)
		require.Error(t, err, "id %q", id)
		assert.Contains(t, err.Error(), "malformed message id")
	}
}

func TestDomains(t *testing.T) {
	c := New(http.DefaultClient, "")

	domains, err := c.Domains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tempmail.lol"}, domains)
}
