package session

import "time"

// Session is one presentation-editing conversation: a deck, its revision
// history, and the message transcript that produced it.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Revision is one persisted deck snapshot. Revisions are append-only; an
// edit that fails validation never produces one.
type Revision struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Revision   int       `json:"revision"`
	DeckJSON   string    `json:"deck_json"`
	SlideCount int       `json:"slide_count"`
	Operation  string    `json:"operation"` // "generate", "add", "edit", "expand", "import"
	CreatedAt  time.Time `json:"created_at"`
}

// Message is a single message in a session transcript.
type Message struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Role         string    `json:"role"` // "user", "assistant", "system"
	Content      string    `json:"content"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	CreatedAt    time.Time `json:"created_at"`
}
