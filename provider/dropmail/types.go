package dropmail

import (
	"encoding/json"

	"tempmail-pro/models"
)

type gqlRequest struct {
	Query     string      `json:"query"`
	Variables interface{} `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type introduceSessionResponse struct {
	IntroduceSession session `json:"introduceSession"`
}

type session struct {
	ID        string         `json:"id"`
	ExpiresAt string         `json:"expiresAt"`
	Addresses []addressEntry `json:"addresses"`
	Mails     []mailEntry    `json:"mails"`
}

type addressEntry struct {
	Address string `json:"address"`
}

// sessionResponse wraps the session query; the session is null once expired.
type sessionResponse struct {
	Session *session `json:"session"`
}

type mailEntry struct {
	ID            string `json:"id"`
	FromAddr      string `json:"fromAddr"`
	HeaderSubject string `json:"headerSubject"`
	Text          string `json:"text"`
	ReceivedAt    string `json:"receivedAt"`
}

func (m mailEntry) toSummary() models.MessageSummary {
	s := models.MessageSummary{
		ID:      m.ID,
		Subject: m.HeaderSubject,
		From:    m.FromAddr,
		Date:    m.ReceivedAt,
	}
	s.Normalize()
	return s
}

func (m mailEntry) toMessage() models.Message {
	return models.Message{
		MessageSummary: m.toSummary(),
		Body:           m.Text,
		Size:           int64(len(m.Text)),
	}
}
