package guerrilla

import (
	"encoding/json"

	"tempmail-pro/models"
)

// addressResponse is the get_email_address reply.
type addressResponse struct {
	EmailAddr string `json:"email_addr"`
	SidToken  string `json:"sid_token"`
}

// listResponse is the get_email_list reply.
type listResponse struct {
	List []mailEntry `json:"list"`
}

// mailEntry is one inbox row. The service is loose about numeric types, so
// ids, timestamps, and sizes decode through json.Number.
type mailEntry struct {
	MailID        json.Number `json:"mail_id"`
	MailFrom      string      `json:"mail_from"`
	MailSubject   string      `json:"mail_subject"`
	MailDate      string      `json:"mail_date"`
	MailTimestamp json.Number `json:"mail_timestamp"`
}

func (m mailEntry) toSummary() models.MessageSummary {
	date := m.MailTimestamp.String()
	if date == "" {
		date = m.MailDate
	}
	s := models.MessageSummary{
		ID:      m.MailID.String(),
		Subject: m.MailSubject,
		From:    m.MailFrom,
		Date:    date,
	}
	s.Normalize()
	return s
}

// fetchResponse is the fetch_email reply.
type fetchResponse struct {
	mailEntry

	MailBody string      `json:"mail_body"`
	MailSize json.Number `json:"mail_size"`
}

func (f fetchResponse) toMessage() models.Message {
	size, _ := f.MailSize.Int64()
	return models.Message{
		MessageSummary: f.toSummary(),
		Body:           f.MailBody,
		// Guerrilla Mail bodies are HTML fragments.
		HTML: true,
		Size: size,
	}
}
