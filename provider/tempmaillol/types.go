package tempmaillol

import "tempmail-pro/models"

type generateResponse struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

// authResponse is the inbox check reply. Messages carry no id or date.
type authResponse struct {
	Email []emailEntry `json:"email"`
}

type emailEntry struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    string `json:"html"`
}

func (e emailEntry) toMessage() models.Message {
	body := e.Body
	html := false
	if body == "" && e.HTML != "" {
		body = e.HTML
		html = true
	}
	summary := models.MessageSummary{
		Subject: e.Subject,
		From:    e.From,
	}
	summary.Normalize()
	return models.Message{
		MessageSummary: summary,
		Body:           body,
		HTML:           html,
		Size:           int64(len(body)),
	}
}
