package ui

import (
	"fmt"
	"strings"

	"tempmail-pro/models"
	"tempmail-pro/utils"
)

// ANSI color codes for terminal output
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

// Color helper functions
func ColorTitle(text string) string     { return ColorCyan + ColorBold + text + ColorReset }
func ColorSuccess(text string) string   { return ColorGreen + ColorBold + text + ColorReset }
func ColorError(text string) string     { return ColorRed + ColorBold + text + ColorReset }
func ColorWarning(text string) string   { return ColorYellow + text + ColorReset }
func ColorInfo(text string) string      { return ColorWhite + text + ColorReset }
func ColorHighlight(text string) string { return ColorCyan + text + ColorReset }
func ColorBadge(text string) string     { return ColorMagenta + text + ColorReset }
func ColorDimText(text string) string   { return ColorDim + ColorWhite + text + ColorReset }

// PrintAddress prints one tracked address row with its provider badge and
// message count.
func PrintAddress(addr models.Address) {
	count := addr.MessageCount()
	counter := ColorDimText(fmt.Sprintf("%d messages", count))
	if count > 0 {
		counter = ColorSuccess(fmt.Sprintf("%d messages", count))
	}
	fmt.Printf("  %s %s  %s\n",
		ColorHighlight(addr.Email),
		ColorBadge("["+addr.Provider+"]"),
		counter)
}

// PrintAddressList prints all tracked addresses, or a hint when empty.
func PrintAddressList(addrs []models.Address) {
	if len(addrs) == 0 {
		fmt.Println(ColorWarning("No addresses yet. Create one with 'new'."))
		return
	}
	for _, addr := range addrs {
		PrintAddress(addr)
	}
}

// PrintInbox prints message summaries, newest first.
func PrintInbox(email string, msgs []models.MessageSummary) {
	fmt.Printf("%s %s\n", ColorTitle("Inbox:"), ColorHighlight(email))
	if len(msgs) == 0 {
		fmt.Println(ColorDimText("  (empty)"))
		return
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		fmt.Printf("  %s %s\n", ColorDimText("["+m.ID+"]"), ColorInfo(m.Subject))
		fmt.Printf("      %s %s\n",
			ColorDimText("From: "+m.From),
			ColorDimText(utils.FormatTimestamp(m.Date)))
	}
}

// PrintMessage prints a full message with its metadata header, rendering
// HTML bodies down to text.
func PrintMessage(msg models.Message) {
	fmt.Println(ColorTitle(msg.Subject))
	fmt.Printf("%s %s\n", ColorDimText("From:"), ColorInfo(msg.From))
	if msg.Date != "" {
		fmt.Printf("%s %s\n", ColorDimText("Date:"), ColorInfo(utils.FormatTimestamp(msg.Date)))
	}
	fmt.Printf("%s %s\n", ColorDimText("Size:"), ColorInfo(utils.FormatSize(msg.Size)))
	fmt.Println(ColorDimText(strings.Repeat("─", 60)))

	body := msg.Body
	if msg.HTML {
		body = utils.RenderHTML(body)
	}
	fmt.Println(body)
}

// PrintDomains prints the domains available from one provider.
func PrintDomains(provider string, domains []string) {
	fmt.Printf("%s\n", ColorTitle(provider))
	for _, d := range domains {
		fmt.Printf("  %s\n", ColorInfo(d))
	}
}

// PrintNewMail prints a new-mail notice for the watch loop.
func PrintNewMail(email string, newCount, total int) {
	fmt.Printf("%s %s %s\n",
		ColorSuccess("New mail:"),
		ColorHighlight(email),
		ColorDimText(fmt.Sprintf("(%d new, %d total)", newCount, total)))
}
