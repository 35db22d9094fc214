package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tempmail-pro/models"
	"tempmail-pro/provider"
	"tempmail-pro/store"
)

// fakeProvider is a canned provider for exercising the facade without a
// network.
type fakeProvider struct {
	name       string
	msg        models.Message
	fetchErr   error
	fetchCalls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Domains(context.Context) ([]string, error) { return nil, nil }

func (f *fakeProvider) CreateAddress(context.Context, string) (models.Address, error) {
	return models.Address{}, nil
}
func (f *fakeProvider) ListMessages(context.Context, string) ([]models.MessageSummary, error) {
	return nil, nil
}
func (f *fakeProvider) FetchMessage(context.Context, string, string) (models.Message, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return models.Message{}, f.fetchErr
	}
	return f.msg, nil
}

type fakeRegistry struct {
	providers map[string]provider.Provider
}

func (r *fakeRegistry) Get(name string) (provider.Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

func (r *fakeRegistry) Names() []string { return nil }
func (r *fakeRegistry) Close()          {}

func fakeApp(t *testing.T, cfg *models.Config, p *fakeProvider) *App {
	t.Helper()
	registry := &fakeRegistry{providers: map[string]provider.Provider{p.name: p}}
	a, err := NewWithRegistry(cfg, zap.NewNop(), registry)
	require.NoError(t, err)
	return a
}

func testConfig(t *testing.T) *models.Config {
	t.Helper()
	dir := t.TempDir()
	return &models.Config{
		DefaultProvider: "guerrillamail",
		RefreshInterval: 5 * time.Second,
		HTTPTimeout:     time.Second,
		StateFile:       filepath.Join(dir, "state.json"),
		LogFile:         filepath.Join(dir, "app.log"),
		LogLevel:        "info",
		CacheTTL:        time.Minute,
		CacheMaxEntries: 16,
	}
}

func seedState(t *testing.T, path string, state *models.State) {
	t.Helper()
	require.NoError(t, store.New(path).Save(state))
}

func TestNewLoadsPersistedState(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "guerrillamail", Token: "sid"})
	seedState(t, cfg.StateFile, state)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	addrs := a.Addresses()
	require.Len(t, addrs, 1)
	assert.Equal(t, "a@grr.la", addrs[0].Email)
}

func TestNewSurvivesCorruptState(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.StateFile, []byte("{broken"), 0o644))

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Addresses())
}

func TestDeleteAddressPersists(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "guerrillamail"})
	state.ReadMessages[models.MessageKey("a@grr.la", "1")] = models.Message{Body: "x"}
	seedState(t, cfg.StateFile, state)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, a.DeleteAddress("a@grr.la"))
	assert.False(t, a.DeleteAddress("a@grr.la"))
	a.Close()

	reloaded, err := store.New(cfg.StateFile).Load()
	require.NoError(t, err)
	assert.Empty(t, reloaded.Addresses)
	assert.Empty(t, reloaded.ReadMessages)
}

func TestAddressesReturnsSnapshot(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "guerrillamail"})
	seedState(t, cfg.StateFile, state)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	snapshot := a.Addresses()
	snapshot[0].Email = "mutated@grr.la"

	assert.Equal(t, "a@grr.la", a.Addresses()[0].Email)
}

func TestProviderNames(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	names := a.ProviderNames()
	assert.Equal(t, []string{"dropmail", "guerrillamail", "mailgw", "mailtm", "tempmaillol"}, names)
}

func TestReadMessageCacheHitSkipsProvider(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "fake", Token: "tok"})
	seedState(t, cfg.StateFile, state)

	p := &fakeProvider{name: "fake"}
	a := fakeApp(t, cfg, p)
	defer a.Close()

	cached := models.Message{
		MessageSummary: models.MessageSummary{ID: "1", Subject: "hi", From: "x@y.z"},
		Body:           "cached body",
	}
	a.cache.Set(models.MessageKey("a@grr.la", "1"), cached)

	msg, err := a.ReadMessage(context.Background(), "a@grr.la", "1")
	require.NoError(t, err)
	assert.Equal(t, "cached body", msg.Body)
	assert.Zero(t, p.fetchCalls)
}

func TestReadMessageWritesThrough(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "fake", Token: "tok"})
	seedState(t, cfg.StateFile, state)

	p := &fakeProvider{
		name: "fake",
		msg: models.Message{
			MessageSummary: models.MessageSummary{ID: "1", Subject: "hi", From: "x@y.z"},
			Body:           "fresh body",
		},
	}
	a := fakeApp(t, cfg, p)
	defer a.Close()

	msg, err := a.ReadMessage(context.Background(), "a@grr.la", "1")
	require.NoError(t, err)
	assert.Equal(t, "fresh body", msg.Body)
	assert.Equal(t, 1, p.fetchCalls)

	// A successful fetch lands in the memory cache and the state file.
	cached, ok := a.cache.Get(models.MessageKey("a@grr.la", "1"))
	require.True(t, ok)
	assert.Equal(t, "fresh body", cached.Body)

	persisted, err := store.New(cfg.StateFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh body", persisted.ReadMessages["a@grr.la/1"].Body)

	// The second read is served from the cache.
	_, err = a.ReadMessage(context.Background(), "a@grr.la", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.fetchCalls)
}

func TestReadMessageServesPersistedCopyOnProviderError(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "fake", Token: "tok"})
	state.ReadMessages[models.MessageKey("a@grr.la", "1")] = models.Message{
		MessageSummary: models.MessageSummary{ID: "1", Subject: "hi", From: "x@y.z"},
		Body:           "persisted body",
	}
	seedState(t, cfg.StateFile, state)

	// The provider has expired the message.
	p := &fakeProvider{name: "fake", fetchErr: assert.AnError}
	a := fakeApp(t, cfg, p)
	defer a.Close()

	msg, err := a.ReadMessage(context.Background(), "a@grr.la", "1")
	require.NoError(t, err)
	assert.Equal(t, "persisted body", msg.Body)
	assert.Equal(t, 1, p.fetchCalls)

	// The served copy is re-cached, so the next read skips the provider.
	_, err = a.ReadMessage(context.Background(), "a@grr.la", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.fetchCalls)
}

func TestReadMessageProviderErrorWithoutPersistedCopy(t *testing.T) {
	cfg := testConfig(t)

	state := models.NewState()
	state.AddAddress(models.Address{Email: "a@grr.la", Provider: "fake", Token: "tok"})
	seedState(t, cfg.StateFile, state)

	p := &fakeProvider{name: "fake", fetchErr: assert.AnError}
	a := fakeApp(t, cfg, p)
	defer a.Close()

	_, err := a.ReadMessage(context.Background(), "a@grr.la", "1")
	assert.Error(t, err)
}

func TestReadMessageUntrackedAddress(t *testing.T) {
	cfg := testConfig(t)

	p := &fakeProvider{name: "fake"}
	a := fakeApp(t, cfg, p)
	defer a.Close()

	_, err := a.ReadMessage(context.Background(), "nobody@grr.la", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not tracked")
}

func TestRawJSON(t *testing.T) {
	msg := models.Message{
		MessageSummary: models.MessageSummary{ID: "1", Subject: "hi", From: "x@y.z"},
		Body:           "hello",
	}

	out := RawJSON(msg)
	assert.Contains(t, out, `"subject": "hi"`)
	assert.Contains(t, out, `"body": "hello"`)
}
