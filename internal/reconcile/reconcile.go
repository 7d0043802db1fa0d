package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

// capturedChart remembers a canvas removed from the deck during an edit:
// the id it carried and the scripts that drew on it.
type capturedChart struct {
	id      string
	scripts []string
}

// Apply splices an envelope into the current deck and returns the resulting
// deck. The input deck is never modified: the result is a validated copy,
// and any error means the caller keeps its snapshot byte-identical.
//
// For style-only edits the original chart scripts of removed slides are
// reattached to matching canvases in the replacement instead of trusting
// the model's returned scripts, so chart behavior survives purely visual
// edits. Warnings carry non-fatal notes (discarded malformed CSS).
func Apply(current *deck.SlideDeck, env *Envelope) (*deck.SlideDeck, []string, error) {
	next := current.Clone()
	var warnings []string

	var captured map[string]capturedChart
	insertAt := 0

	switch env.Kind {
	case OpAdd:
		// Defense against a model that ignores add instructions and
		// returns splice indexes anyway: only the resolved anchor is
		// honored, and no existing slide is ever removed.
		insertAt = env.InsertAt
		if insertAt < 0 {
			insertAt = 0
		}
		if insertAt > len(next.Slides) {
			insertAt = len(next.Slides)
		}

	case OpEdit, OpExpand:
		start, count := env.StartIndex, env.OriginalCount
		if start < 0 || count < 1 || start+count > len(next.Slides) {
			return nil, nil, fmt.Errorf("edit window [%d,%d) out of range for %d slides", start, start+count, len(next.Slides))
		}
		removed := next.Slides[start : start+count]
		captured = captureCharts(next, removed)
		next.Slides = append(next.Slides[:start:start], next.Slides[start+count:]...)
		insertAt = start

	default:
		return nil, nil, fmt.Errorf("unknown operation kind %d", env.Kind)
	}

	replacements := dedupCanvasIDs(next, env.Slides)
	if env.StyleOnly && len(captured) > 0 {
		reattachScripts(next.Registry(), replacements, captured)
	}

	spliced := make([]*deck.Slide, 0, len(next.Slides)+len(replacements))
	spliced = append(spliced, next.Slides[:insertAt]...)
	spliced = append(spliced, replacements...)
	spliced = append(spliced, next.Slides[insertAt:]...)
	next.Slides = spliced

	for _, src := range env.ExternalScripts {
		if !containsString(next.ExternalScripts, src) {
			next.ExternalScripts = append(next.ExternalScripts, src)
		}
	}

	if strings.TrimSpace(env.CSS) != "" {
		merged, warn := deck.MergeCSS(next.CSS, env.CSS)
		next.CSS = merged
		if warn != nil {
			warnings = append(warnings, warn.Error())
		}
	}

	next.Renumber()
	next.Rehash()
	if err := next.Validate(); err != nil {
		return nil, nil, err
	}
	return next, warnings, nil
}

// captureCharts records, for every canvas on the slides about to be
// removed, the scripts that reference it. Keys are base ids so a canvas
// that was previously deduplicated still matches its replacement.
func captureCharts(d *deck.SlideDeck, removed []*deck.Slide) map[string]capturedChart {
	captured := make(map[string]capturedChart)
	for _, s := range removed {
		for _, id := range deck.CanvasIDsIn(s.HTML) {
			var scripts []string
			for _, script := range s.Scripts {
				if containsString(deck.CanvasRefs(script), id) {
					scripts = append(scripts, script)
				}
			}
			base := d.Registry().Base(id)
			if _, dup := captured[base]; !dup {
				captured[base] = capturedChart{id: id, scripts: scripts}
			}
		}
	}
	return captured
}

// dedupCanvasIDs rewrites every canvas id introduced by the replacement
// slides that collides with an id elsewhere in the deck. The new id is
// minted by the deck's registry and every reference in the slide's HTML and
// scripts is rewritten before insertion.
func dedupCanvasIDs(d *deck.SlideDeck, slides []*deck.Slide) []*deck.Slide {
	taken := make(map[string]bool)
	for id := range d.CanvasIDs() {
		taken[id] = true
	}
	for _, s := range slides {
		for _, id := range deck.CanvasIDsIn(s.HTML) {
			if !taken[id] {
				taken[id] = true
				continue
			}
			fresh := d.Registry().Assign(id, taken)
			taken[fresh] = true
			s.HTML = rewriteCanvasID(s.HTML, id, fresh)
			for j, script := range s.Scripts {
				s.Scripts[j] = rewriteCanvasID(script, id, fresh)
			}
		}
	}
	return slides
}

// reattachScripts restores captured chart scripts onto replacement slides
// whose canvases match a removed canvas by base id, rewriting references to
// the canvas's current id. The model's own scripts for those canvases are
// dropped.
func reattachScripts(reg *deck.IDRegistry, slides []*deck.Slide, captured map[string]capturedChart) {
	for _, s := range slides {
		for _, id := range deck.CanvasIDsIn(s.HTML) {
			chart, ok := captured[reg.Base(id)]
			if !ok || len(chart.scripts) == 0 {
				continue
			}
			kept := s.Scripts[:0]
			for _, script := range s.Scripts {
				if !containsString(deck.CanvasRefs(script), id) {
					kept = append(kept, script)
				}
			}
			s.Scripts = kept
			for _, script := range chart.scripts {
				if chart.id != id {
					script = rewriteCanvasID(script, chart.id, id)
				}
				s.Scripts = append(s.Scripts, script)
			}
		}
	}
}

// rewriteCanvasID replaces whole-id occurrences of old with new. Id
// characters include hyphens, so plain \b boundaries are not enough: the
// boundary class excludes both word characters and hyphens. The replacement
// loops because adjacent occurrences can share a boundary character.
func rewriteCanvasID(text, old, fresh string) string {
	re := regexp.MustCompile(`(^|[^\w-])` + regexp.QuoteMeta(old) + `([^\w-]|$)`)
	for {
		replaced := re.ReplaceAllString(text, "${1}"+fresh+"${2}")
		if replaced == text {
			return replaced
		}
		text = replaced
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
