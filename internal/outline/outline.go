// Package outline imports markdown outlines as seed decks: the document
// title becomes the deck title, each second-level heading starts a new
// slide, and fenced code blocks are syntax highlighted.
package outline

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

// deckCSS styles imported decks. Generated decks carry their own CSS; an
// outline import has none, so a minimal sheet keeps the result readable.
const deckCSS = `.slide { min-height: 100vh; padding: 48px 64px; box-sizing: border-box; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; }
.slide h1 { font-size: 2.4em; }
.slide h2 { font-size: 1.8em; }
.slide pre { background: #f6f8fa; padding: 12px; border-radius: 6px; overflow-x: auto; }`

// section is one slice of the outline: a run of markdown lines that will
// render into a single slide.
type section struct {
	lines []string
}

// FromMarkdown converts a markdown outline into a slide deck. The first
// `#` heading becomes the deck title and opens the title slide; every `##`
// heading starts a new slide. A document with no headings becomes a single
// slide.
func FromMarkdown(src []byte) (*deck.SlideDeck, error) {
	title, sections := split(string(src))
	if len(sections) == 0 {
		return nil, fmt.Errorf("outline is empty")
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	if title != "" {
		fmt.Fprintf(&doc, "<title>%s</title>\n", stdhtml.EscapeString(title))
	}
	doc.WriteString("<style>\n" + deckCSS + "\n</style>\n</head>\n<body>\n")

	for _, sec := range sections {
		var body bytes.Buffer
		if err := md.Convert([]byte(strings.Join(sec.lines, "\n")), &body); err != nil {
			return nil, fmt.Errorf("rendering outline section: %w", err)
		}
		doc.WriteString(`<div class="slide">` + "\n")
		doc.Write(body.Bytes())
		doc.WriteString("</div>\n")
	}
	doc.WriteString("</body>\n</html>\n")

	d, err := deck.Decompose(doc.String())
	if err != nil {
		return nil, fmt.Errorf("assembling imported deck: %w", err)
	}
	return d, nil
}

// split slices the outline into per-slide sections. Heading markers inside
// fenced code blocks are ignored.
func split(src string) (title string, sections []section) {
	var current *section
	open := func() *section {
		sections = append(sections, section{})
		return &sections[len(sections)-1]
	}

	inFence := false
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}

		if !inFence {
			if title == "" && strings.HasPrefix(trimmed, "# ") {
				title = strings.TrimSpace(trimmed[2:])
				current = open()
				current.lines = append(current.lines, line)
				continue
			}
			if strings.HasPrefix(trimmed, "## ") {
				current = open()
				current.lines = append(current.lines, line)
				continue
			}
		}

		if current == nil {
			if trimmed == "" {
				continue
			}
			current = open()
		}
		current.lines = append(current.lines, line)
	}

	// Drop sections that rendered from blank runs only.
	var kept []section
	for _, sec := range sections {
		if strings.TrimSpace(strings.Join(sec.lines, "")) != "" {
			kept = append(kept, sec)
		}
	}
	return title, kept
}
