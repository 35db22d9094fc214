package models

import "time"

// MessageSummary is the normalized inbox-listing form of a message. Every
// provider maps its own wire format onto these fields; missing values get
// the documented fallbacks so the UI never renders empty cells.
type MessageSummary struct {
	ID      string `json:"id" yaml:"id"`
	Subject string `json:"subject" yaml:"subject"`
	From    string `json:"from" yaml:"from"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Message is a fully fetched message, including its body.
type Message struct {
	MessageSummary `yaml:",inline"`

	Body string `json:"body" yaml:"body"`
	// HTML reports whether Body is HTML rather than plain text.
	HTML bool `json:"html,omitempty" yaml:"html,omitempty"`
	// Size in bytes as reported by the provider; 0 when unreported.
	Size int64 `json:"size,omitempty" yaml:"size,omitempty"`
}

const (
	FallbackSubject = "No Subject"
	FallbackSender  = "Unknown"
)

// Normalize fills fallback values for fields a provider left blank.
func (s *MessageSummary) Normalize() {
	if s.Subject == "" {
		s.Subject = FallbackSubject
	}
	if s.From == "" {
		s.From = FallbackSender
	}
}

// Address is a disposable address tracked by the application. Token is the
// provider-specific credential needed to read the inbox; its shape is opaque
// outside the owning provider package.
type Address struct {
	Email     string    `json:"email" yaml:"email"`
	Provider  string    `json:"provider" yaml:"provider"`
	Token     string    `json:"token" yaml:"token"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Messages is the most recent inbox listing.
	Messages []MessageSummary `json:"messages,omitempty" yaml:"messages,omitempty"`
	// LastSeenCount is the message count at the previous refresh, used to
	// detect new mail.
	LastSeenCount int `json:"last_seen_count" yaml:"last_seen_count"`
}

// MessageCount returns the number of messages from the last refresh.
func (a *Address) MessageCount() int {
	return len(a.Messages)
}

// State is everything persisted between runs: the tracked addresses in
// creation order plus the bodies of messages that were already fetched, so
// read mail stays viewable after the provider expires it.
type State struct {
	Addresses []Address `json:"addresses"`
	// ReadMessages maps "<email>/<messageID>" to the fetched message.
	ReadMessages map[string]Message `json:"read_messages,omitempty"`
}

// NewState returns an empty state ready for use.
func NewState() *State {
	return &State{ReadMessages: map[string]Message{}}
}

// FindAddress returns the tracked address with the given email, or nil.
func (s *State) FindAddress(email string) *Address {
	for i := range s.Addresses {
		if s.Addresses[i].Email == email {
			return &s.Addresses[i]
		}
	}
	return nil
}

// AddAddress appends a new address. Re-adding an existing email replaces the
// stored token and resets the message list.
func (s *State) AddAddress(addr Address) {
	if existing := s.FindAddress(addr.Email); existing != nil {
		*existing = addr
		return
	}
	s.Addresses = append(s.Addresses, addr)
}

// RemoveAddress forgets an address and any of its persisted messages. It
// reports whether the address was present.
func (s *State) RemoveAddress(email string) bool {
	for i := range s.Addresses {
		if s.Addresses[i].Email != email {
			continue
		}
		s.Addresses = append(s.Addresses[:i], s.Addresses[i+1:]...)
		prefix := email + "/"
		for key := range s.ReadMessages {
			if len(key) > len(prefix) && key[:len(prefix)] == prefix {
				delete(s.ReadMessages, key)
			}
		}
		return true
	}
	return false
}

// MessageKey builds the state/cache key for a fetched message.
func MessageKey(email, messageID string) string {
	return email + "/" + messageID
}
