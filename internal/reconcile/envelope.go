// Package reconcile applies a parsed edit response against a live deck:
// splicing slides, deduplicating canvas ids, reattaching preserved scripts
// for style-only edits, and merging CSS. Every application is validated as a
// whole; on failure the caller's deck is untouched.
package reconcile

import (
	"errors"
	"strings"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

// Op is the kind of splice an envelope performs.
type Op int

const (
	OpAdd Op = iota
	OpEdit
	OpExpand
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpEdit:
		return "edit"
	default:
		return "expand"
	}
}

// Window is the deck region an edit was resolved to before the model was
// called. The envelope is built scoped to it; any slide indexes the model
// response itself carries are ignored.
type Window struct {
	Kind          Op
	StartIndex    int
	OriginalCount int
	InsertAt      int
	StyleOnly     bool
}

// Envelope is the parsed, normalized description of a pending edit. It is
// produced once per edit turn, consumed once by Apply, then discarded.
type Envelope struct {
	Kind            Op
	StartIndex      int
	OriginalCount   int
	InsertAt        int
	StyleOnly       bool
	Slides          []*deck.Slide
	CSS             string
	ExternalScripts []string
}

// ParseFailure reports that an edit response could not be turned into an
// envelope. It is fatal to the current edit only; the deck is unchanged.
type ParseFailure struct {
	Reason string
}

func (e *ParseFailure) Error() string {
	return "edit response unusable: " + e.Reason
}

// ParseEnvelope parses a model edit response, scoped to the resolved
// window, into a replacement envelope. A response with no recognizable
// slide container is a ParseFailure; the caller must not fall back to
// treating it as a whole-deck replacement.
func ParseEnvelope(response string, w Window) (*Envelope, error) {
	mini, err := deck.Decompose(StripFences(response))
	if err != nil {
		var noSlides *deck.NoSlidesFoundError
		if errors.As(err, &noSlides) {
			return nil, &ParseFailure{Reason: "response contains no recognizable slide container"}
		}
		return nil, &ParseFailure{Reason: err.Error()}
	}
	return &Envelope{
		Kind:            w.Kind,
		StartIndex:      w.StartIndex,
		OriginalCount:   w.OriginalCount,
		InsertAt:        w.InsertAt,
		StyleOnly:       w.StyleOnly,
		Slides:          mini.Slides,
		CSS:             mini.CSS,
		ExternalScripts: mini.ExternalScripts,
	}, nil
}

// StripFences unwraps a markdown-fenced response. Models frequently wrap
// HTML in ```html fences and add commentary around them; everything outside
// the outermost fence pair is dropped. Unfenced responses pass through.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	first := strings.Index(trimmed, "```")
	if first < 0 {
		return trimmed
	}
	rest := trimmed[first+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if last := strings.LastIndex(rest, "```"); last >= 0 {
		rest = rest[:last]
	}
	return strings.TrimSpace(rest)
}
