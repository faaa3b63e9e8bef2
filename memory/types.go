package memory

import "time"

// ConversationRound is one question/answer exchange in a session.
type ConversationRound struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
