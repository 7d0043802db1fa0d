package deck

import (
	"fmt"
	"html"
	"strings"
)

// Knit combines all slides, the shared CSS, external script tags, and every
// slide's scripts into one self-contained HTML document. Each slide's script
// is wrapped in an isolating closure so identifiers cannot collide across
// slides sharing the document context.
//
// A knitted document can be fed back through Decompose, which recognizes and
// unwraps the closures. That re-import is the lossy fallback: script content
// not bound to a canvas cannot be re-attributed to its slide. Prefer
// ToSerializable for persistence.
func (d *SlideDeck) Knit() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	if d.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(d.Title))
	}
	if d.CSS != "" {
		b.WriteString("<style>\n")
		b.WriteString(d.CSS)
		b.WriteString("\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	for _, s := range d.Slides {
		b.WriteString(s.HTML)
		b.WriteString("\n")
	}
	for _, src := range d.ExternalScripts {
		fmt.Fprintf(&b, "<script src=%q></script>\n", src)
	}
	if d.hasScripts() {
		b.WriteString("<script>\n")
		for _, s := range d.Slides {
			for _, script := range s.Scripts {
				b.WriteString("(function() {\n")
				b.WriteString(script)
				b.WriteString("\n})();\n")
			}
		}
		b.WriteString("</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// RenderSingle returns a standalone document for one slide using only that
// slide's own scripts, unwrapped: a single slide's rendering context has no
// sibling scripts to collide with.
func (d *SlideDeck) RenderSingle(index int) (string, error) {
	if index < 0 || index >= len(d.Slides) {
		return "", fmt.Errorf("slide index %d out of range [0,%d)", index, len(d.Slides))
	}
	s := d.Slides[index]

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	if d.CSS != "" {
		b.WriteString("<style>\n")
		b.WriteString(d.CSS)
		b.WriteString("\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(s.HTML)
	b.WriteString("\n")
	for _, src := range d.ExternalScripts {
		fmt.Fprintf(&b, "<script src=%q></script>\n", src)
	}
	for _, script := range s.Scripts {
		b.WriteString("<script>\n")
		b.WriteString(script)
		b.WriteString("\n</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (d *SlideDeck) hasScripts() bool {
	for _, s := range d.Slides {
		if len(s.Scripts) > 0 {
			return true
		}
	}
	return false
}
