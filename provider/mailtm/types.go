package mailtm

import (
	"strings"

	"tempmail-pro/models"
)

type accountRequest struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type hydraDomains struct {
	Member []domainEntry `json:"hydra:member"`
}

type domainEntry struct {
	Domain string `json:"domain"`
}

type hydraMessages struct {
	Member []messageEntry `json:"hydra:member"`
}

type mailbox struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type messageEntry struct {
	ID        string  `json:"id"`
	Subject   string  `json:"subject"`
	From      mailbox `json:"from"`
	CreatedAt string  `json:"createdAt"`
}

func (m messageEntry) toSummary() models.MessageSummary {
	s := models.MessageSummary{
		ID:      m.ID,
		Subject: m.Subject,
		From:    m.From.Address,
		Date:    m.CreatedAt,
	}
	s.Normalize()
	return s
}

// messageDetail is the full message. The API returns html as a list of
// fragments; text is preferred when both are present.
type messageDetail struct {
	messageEntry

	Text string   `json:"text"`
	HTML []string `json:"html"`
	Size int64    `json:"size"`
}

func (m messageDetail) toMessage() models.Message {
	body := m.Text
	html := false
	if body == "" && len(m.HTML) > 0 {
		body = strings.Join(m.HTML, "\n")
		html = true
	}
	return models.Message{
		MessageSummary: m.toSummary(),
		Body:           body,
		HTML:           html,
		Size:           m.Size,
	}
}
