package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "", FormatTimestamp(""))

	// Unix seconds, as Guerrilla Mail reports them.
	unix := FormatTimestamp("1700000000")
	assert.Equal(t, time.Unix(1700000000, 0).Format("2006-01-02 15:04"), unix)

	// RFC 3339, as the Hydra services report.
	rfc := FormatTimestamp("2024-03-01T12:30:00Z")
	parsed, _ := time.Parse(time.RFC3339, "2024-03-01T12:30:00Z")
	assert.Equal(t, parsed.Local().Format("2006-01-02 15:04"), rfc)

	// Zoneless ISO, as DropMail reports.
	iso := FormatTimestamp("2024-03-01T12:30:00")
	assert.Contains(t, iso, "2024-03-01")

	// Unrecognized values pass through.
	assert.Equal(t, "yesterday", FormatTimestamp("yesterday"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "0 B", FormatSize(-5))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.0 MB", FormatSize(2*1024*1024))
}

func TestRenderHTMLStripsTags(t *testing.T) {
	body := `<html><head><title>x</title></head><body><p>Hello <b>world</b></p><p>Second</p></body></html>`
	assert.Equal(t, "Hello world\nSecond", RenderHTML(body))
}

func TestRenderHTMLDropsScriptsAndStyles(t *testing.T) {
	body := `<style>.a{color:red}</style><script>alert(1)</script><div>visible</div>`
	assert.Equal(t, "visible", RenderHTML(body))
}

func TestRenderHTMLDecodesEntities(t *testing.T) {
	assert.Equal(t, "a < b & c", RenderHTML("a &lt; b &amp; c"))
}

func TestRenderHTMLCollapsesWhitespace(t *testing.T) {
	body := "<p>one</p>\n\n\n\n<p>  two   words </p><br><br><br>"
	assert.Equal(t, "one\n\ntwo words", RenderHTML(body))
}

func TestRenderHTMLBreaksOnBlockClosers(t *testing.T) {
	body := `<ul><li>first</li><li>second</li></ul><h1>title</h1>after`
	out := RenderHTML(body)
	assert.Contains(t, out, "first\nsecond")
	assert.Contains(t, out, "title\nafter")
}
