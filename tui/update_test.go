package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tempmail-pro/app"
	"tempmail-pro/models"
	"tempmail-pro/poller"
)

func testApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()

	a, err := app.New(&models.Config{
		DefaultProvider: "guerrillamail",
		RefreshInterval: 5 * time.Second,
		HTTPTimeout:     time.Second,
		StateFile:       filepath.Join(dir, "state.json"),
		LogFile:         filepath.Join(dir, "app.log"),
		LogLevel:        "info",
		CacheTTL:        time.Minute,
		CacheMaxEntries: 16,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestHandleRefreshedClampsInboxCursor(t *testing.T) {
	m := NewModel(testApp(t))
	m.state = StateInbox
	m.currentEmail = "a@grr.la"
	m.messages = []models.MessageSummary{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	m.msgCursor = 2

	// The sweep shrinks the open inbox, e.g. an expired session.
	updated, _ := m.Update(RefreshedMsg{
		Addresses: []models.Address{{
			Email:    "a@grr.la",
			Messages: []models.MessageSummary{{ID: "1"}},
		}},
	})

	model, ok := updated.(Model)
	require.True(t, ok)
	assert.Len(t, model.messages, 1)
	assert.Equal(t, 0, model.msgCursor)
}

func TestHandleRefreshedEmptiedInbox(t *testing.T) {
	m := NewModel(testApp(t))
	m.state = StateInbox
	m.currentEmail = "a@grr.la"
	m.messages = []models.MessageSummary{{ID: "1"}}
	m.msgCursor = 0

	updated, _ := m.Update(RefreshedMsg{
		Addresses: []models.Address{{Email: "a@grr.la"}},
	})

	model := updated.(Model)
	assert.Empty(t, model.messages)
	assert.Equal(t, 0, model.msgCursor)
}

func TestHandleRefreshedClampsAddressCursor(t *testing.T) {
	m := NewModel(testApp(t))
	m.addresses = []models.Address{{Email: "a@grr.la"}, {Email: "b@mail.tm"}}
	m.cursor = 1

	updated, _ := m.Update(RefreshedMsg{
		Addresses: []models.Address{{Email: "a@grr.la"}},
	})

	model := updated.(Model)
	assert.Equal(t, 0, model.cursor)
}

func TestHandleRefreshedNoticeSetsStatus(t *testing.T) {
	m := NewModel(testApp(t))

	updated, cmd := m.Update(RefreshedMsg{
		Addresses: []models.Address{{Email: "a@grr.la"}},
		Notices:   []poller.Notice{{Email: "a@grr.la", Count: 2, New: 1}},
	})

	model := updated.(Model)
	assert.Contains(t, model.status, "a@grr.la")
	assert.NotNil(t, cmd)
}

func TestViewAddressesEmptyHint(t *testing.T) {
	m := NewModel(testApp(t))

	assert.Contains(t, m.View(), "No addresses yet")
}
