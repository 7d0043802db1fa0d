// Package llm drives the chat-completion backends that write slide decks.
// A generation or edit turn asks the model for a complete HTML document or
// an edit envelope, so responses run far longer than typical chat replies;
// providers default the token ceiling to DefaultMaxTokens when a request
// leaves it unset.
package llm

import "context"

// DefaultMaxTokens is the response ceiling applied when a request does not
// set one. A full deck is a single HTML document with inline chart scripts;
// the usual 4096 chat default truncates it mid-slide.
const DefaultMaxTokens = 16384

// Provider is one completion backend.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
