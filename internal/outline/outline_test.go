package outline

import (
	"strings"
	"testing"
)

const sampleOutline = `# Release Planning

A short intro paragraph.

## Timeline

- Kickoff in March
- Beta in June

## Risks

The usual ones.
`

func TestFromMarkdown(t *testing.T) {
	d, err := FromMarkdown([]byte(sampleOutline))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}

	if d.Title != "Release Planning" {
		t.Errorf("title = %q, want %q", d.Title, "Release Planning")
	}
	if len(d.Slides) != 3 {
		t.Fatalf("got %d slides, want title slide + 2 sections", len(d.Slides))
	}
	if !strings.Contains(d.Slides[0].HTML, "Release Planning") || !strings.Contains(d.Slides[0].HTML, "short intro") {
		t.Errorf("title slide should carry the intro, got %q", d.Slides[0].HTML)
	}
	if !strings.Contains(d.Slides[1].HTML, "Kickoff in March") {
		t.Errorf("slide 2 = %q", d.Slides[1].HTML)
	}
	if !strings.Contains(d.Slides[2].HTML, "Risks") {
		t.Errorf("slide 3 = %q", d.Slides[2].HTML)
	}
	if d.CSS == "" {
		t.Error("imported decks should carry the default stylesheet")
	}
}

func TestFromMarkdownHeadingInsideCodeFence(t *testing.T) {
	src := "# Shell Tips\n\n## Comments\n\n```bash\n# not a heading\n## also not one\necho hi\n```\n"
	d, err := FromMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("got %d slides, fence content must not split slides", len(d.Slides))
	}
	if !strings.Contains(d.Slides[1].HTML, "not a heading") {
		t.Errorf("code block lost: %q", d.Slides[1].HTML)
	}
	if !strings.Contains(d.Slides[1].HTML, "<pre") {
		t.Errorf("code block should render highlighted, got %q", d.Slides[1].HTML)
	}
}

func TestFromMarkdownEscapesTitle(t *testing.T) {
	// Unescaped, "</title>" would terminate the title element early and
	// spill the rest of the heading into the head.
	d, err := FromMarkdown([]byte("# Closing </title> tags\n\nIntro.\n"))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if d.Title != "Closing </title> tags" {
		t.Errorf("title = %q, want %q", d.Title, "Closing </title> tags")
	}

	d, err = FromMarkdown([]byte("# Fish &amp; Chips\n\nIntro.\n"))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if d.Title != "Fish &amp; Chips" {
		t.Errorf("title = %q, entities in the heading must survive verbatim", d.Title)
	}
}

func TestFromMarkdownNoHeadings(t *testing.T) {
	d, err := FromMarkdown([]byte("just a paragraph\n\nand another\n"))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if len(d.Slides) != 1 {
		t.Errorf("got %d slides, want 1", len(d.Slides))
	}
	if d.Title != "" {
		t.Errorf("title = %q, want empty", d.Title)
	}
}

func TestFromMarkdownEmpty(t *testing.T) {
	if _, err := FromMarkdown([]byte("  \n\n")); err == nil {
		t.Fatal("empty outline should error")
	}
}
