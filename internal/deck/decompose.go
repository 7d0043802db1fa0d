package deck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Decompose turns a raw HTML document string into a structured SlideDeck.
//
// Every outermost element carrying the slide marker class becomes one slide,
// in document order. Inline scripts are split and bound to the slides whose
// canvases they draw on; script content that cannot be attributed to any
// canvas attaches to the last slide as a documented fallback.
// <script src> elements populate the external script list, de-duplicated by
// first occurrence. <style> contents concatenate into the shared CSS.
//
// Returns a NoSlidesFoundError when the document contains zero slide
// containers; no partial deck is produced.
func Decompose(doc string) (*SlideDeck, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, &NoSlidesFoundError{Detail: err.Error()}
	}

	containers := findSlideContainers(root)
	if len(containers) == 0 {
		return nil, &NoSlidesFoundError{}
	}

	d := &SlideDeck{Title: findTitle(root)}

	// Canvas id -> owning slide index. Built before scripts are detached so
	// the binder can resolve segments to slides. A canvas id appearing on
	// two slides is malformed input: the earliest slide wins and the
	// anomaly is recorded, never failed on.
	index := make(map[string]int)
	for i, c := range containers {
		for _, cv := range canvasElements(c) {
			id := attrVal(cv, "id")
			if prev, dup := index[id]; dup {
				d.Anomalies = append(d.Anomalies,
					fmt.Sprintf("canvas id %q appears on slides %d and %d; assigned to slide %d", id, prev, i, prev))
				continue
			}
			index[id] = i
		}
	}

	// Collect scripts and styles in document order, then detach them from
	// the tree so slide HTML serializes without them: script ownership is
	// tracked structurally, not as markup.
	var (
		inline   []string
		cssParts []string
		detach   []*html.Node
		seenExt  = make(map[string]bool)
	)
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Script:
			if src := attrVal(n, "src"); src != "" {
				if !seenExt[src] {
					seenExt[src] = true
					d.ExternalScripts = append(d.ExternalScripts, src)
				}
			} else if text := strings.TrimSpace(textContent(n)); text != "" {
				inline = append(inline, text)
			}
			detach = append(detach, n)
		case atom.Style:
			if text := strings.TrimSpace(textContent(n)); text != "" {
				cssParts = append(cssParts, text)
			}
			detach = append(detach, n)
		}
	})
	for _, n := range detach {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	d.CSS = strings.Join(cssParts, "\n")

	for _, c := range containers {
		d.Slides = append(d.Slides, &Slide{HTML: renderNode(c)})
	}

	// Bind each inline script's segments to their owning slides.
	for _, text := range inline {
		for _, seg := range SplitScript(text, index) {
			target := seg.SlideIndex
			if target < 0 || target >= len(d.Slides) {
				target = len(d.Slides) - 1
			}
			d.Slides[target].Scripts = append(d.Slides[target].Scripts, seg.Text)
		}
	}

	d.Renumber()
	d.Rehash()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
