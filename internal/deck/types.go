package deck

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SlideMarkerClass identifies a slide container element. Every slide's HTML
// holds exactly one element carrying this class.
const SlideMarkerClass = "slide"

// Slide is one slide of a presentation. Scripts hold the JavaScript owned
// exclusively by this slide; every canvas id they reference must exist in
// this slide's own HTML.
type Slide struct {
	HTML        string
	SlideID     string
	Scripts     []string
	ContentHash string
}

// SlideDeck is a structured multi-slide presentation. Slides are ordered and
// the order is significant; CSS is shared across all slides.
type SlideDeck struct {
	Title           string
	Slides          []*Slide
	CSS             string
	ExternalScripts []string

	// Anomalies records non-fatal oddities observed while parsing or
	// validating (duplicate canvas ids in source HTML, scripts left
	// unbalanced after repair). They never fail an operation.
	Anomalies []string

	registry *IDRegistry
}

// Registry returns the deck's canvas-id registry, creating it on first use.
func (d *SlideDeck) Registry() *IDRegistry {
	if d.registry == nil {
		d.registry = newIDRegistry()
	}
	return d.registry
}

// Renumber re-derives every slide's SlideID from its position. Called after
// any mutation that adds, removes, or reorders slides.
func (d *SlideDeck) Renumber() {
	for i, s := range d.Slides {
		s.SlideID = fmt.Sprintf("slide-%d", i)
	}
}

// Rehash recomputes every slide's content hash from its HTML.
func (d *SlideDeck) Rehash() {
	for _, s := range d.Slides {
		s.ContentHash = hashContent(s.HTML)
	}
}

// Clone returns a deep copy of the deck. The registry is shared: id
// assignments made by this engine stay valid across snapshots of the same
// presentation.
func (d *SlideDeck) Clone() *SlideDeck {
	c := &SlideDeck{
		Title:           d.Title,
		CSS:             d.CSS,
		ExternalScripts: append([]string(nil), d.ExternalScripts...),
		Anomalies:       append([]string(nil), d.Anomalies...),
		registry:        d.Registry(),
	}
	for _, s := range d.Slides {
		c.Slides = append(c.Slides, &Slide{
			HTML:        s.HTML,
			SlideID:     s.SlideID,
			Scripts:     append([]string(nil), s.Scripts...),
			ContentHash: s.ContentHash,
		})
	}
	return c
}

// CanvasIDs returns every canvas id present in the deck, mapped to the index
// of the slide that owns it. When the same id appears on two slides the
// earliest slide wins, matching decomposition behavior.
func (d *SlideDeck) CanvasIDs() map[string]int {
	ids := make(map[string]int)
	for i, s := range d.Slides {
		for _, id := range CanvasIDsIn(s.HTML) {
			if _, seen := ids[id]; !seen {
				ids[id] = i
			}
		}
	}
	return ids
}

func hashContent(html string) string {
	sum := sha256.Sum256([]byte(html))
	return hex.EncodeToString(sum[:8])
}
