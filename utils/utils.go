package utils

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatTimestamp renders a provider date for display. Providers disagree on
// formats: Guerrilla Mail sends unix seconds, the Hydra services RFC 3339,
// DropMail an ISO timestamp without zone. Anything unrecognized passes
// through unchanged.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	if secs, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(secs, 0).Format("2006-01-02 15:04")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Local().Format("2006-01-02 15:04")
		}
	}
	return ts
}

// FormatSize renders a byte count for display.
func FormatSize(size int64) string {
	switch {
	case size <= 0:
		return "0 B"
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

var (
	scriptBlocks = regexp.MustCompile(`(?is)<(script|style|head)[^>]*>.*?</\s*(script|style|head)\s*>`)
	lineBreaks   = regexp.MustCompile(`(?i)<(br|/p|/div|/tr|/li|/h[1-6])[^>]*>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
)

// RenderHTML reduces an HTML body to readable terminal text: scripts and
// styles dropped, block-level closers become newlines, remaining tags
// stripped, entities decoded.
func RenderHTML(body string) string {
	text := scriptBlocks.ReplaceAllString(body, "")
	text = lineBreaks.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
