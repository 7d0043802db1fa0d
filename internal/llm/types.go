package llm

// Role is the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one message of the prompt conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries one turn's prompt. MaxTokens of zero means
// DefaultMaxTokens.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the model's reply: the raw text, which for this
// product is an HTML document or an edit envelope, plus usage accounting.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// Truncated reports that the model hit its token ceiling before finishing.
// A truncated deck or envelope never parses; naming the reason saves the
// user from an opaque parse failure.
func (r *CompletionResponse) Truncated() bool {
	switch r.FinishReason {
	case "length", "max_tokens":
		return true
	}
	return false
}
