package deck

import (
	"regexp"
	"strings"
)

// ScriptSegment is one chunk of script text bound to the canvas ids it
// references. It only exists during a single parse pass; resolved segments
// are stored as plain script text on their owning slides.
type ScriptSegment struct {
	Text       string
	CanvasIDs  []string
	SlideIndex int // -1 when no referenced id resolves to a slide
}

// canvasMarker matches an explicit ownership marker: // Canvas: <id>
var canvasMarker = regexp.MustCompile(`(?m)^\s*//\s*[Cc]anvas:\s*([A-Za-z][\w-]*)`)

// getElementRef matches getElementById('<id>') with either quote style.
var getElementRef = regexp.MustCompile(`getElementById\(\s*['"]([^'"]+)['"]\s*\)`)

// querySelectorRef matches querySelector('#<id>').
var querySelectorRef = regexp.MustCompile(`querySelector\(\s*['"]#([^'"]+)['"]\s*\)`)

// freshDecl matches a new local variable declaration at the start of a line.
var freshDecl = regexp.MustCompile(`^\s*(?:const|let|var)\s+[A-Za-z_$]`)

// closureOpen and closureClose match the isolating wrapper Knit puts around
// each slide's script. The binder recognizes its own convention and unwraps
// it so a knitted document re-decomposes to per-slide scripts.
var (
	closureOpen  = regexp.MustCompile(`^\s*\(\s*function\s*\(\s*\)\s*\{\s*$`)
	closureClose = regexp.MustCompile(`^\s*\}\s*\)\s*\(\s*\)\s*;?\s*$`)
)

// CanvasRefs returns the canvas ids referenced in a piece of script text,
// in order of first occurrence, unioned across all detection patterns.
func CanvasRefs(text string) []string {
	type match struct {
		pos int
		id  string
	}
	var found []match
	for _, re := range []*regexp.Regexp{canvasMarker, getElementRef, querySelectorRef} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			found = append(found, match{pos: m[0], id: text[m[2]:m[3]]})
		}
	}
	seen := make(map[string]bool)
	var ids []string
	// Insertion-sort by position keeps first-occurrence order across the
	// three patterns without pulling in sort for a handful of matches.
	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].pos < found[j-1].pos; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}
	for _, m := range found {
		if !seen[m.id] {
			seen[m.id] = true
			ids = append(ids, m.id)
		}
	}
	return ids
}

// SplitScript splits one script's raw text into ordered segments, each bound
// to the canvas ids it references and resolved against the canvas->slide
// index. Segment boundaries are heuristic: a recognized canvas reference to
// a fresh id occurring alongside a new local variable declaration (or an
// explicit // Canvas: marker) starts a new segment. This separates legacy
// multi-chart blocks; it is pattern matching, not a grammar.
//
// A segment with no resolvable id gets SlideIndex -1; the caller attaches it
// to the last slide.
func SplitScript(text string, index map[string]int) []ScriptSegment {
	lines := strings.Split(text, "\n")

	var segs []ScriptSegment
	var cur []string
	curSeen := make(map[string]bool)
	var curIDs []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(cur, "\n"))
		if body != "" {
			seg := ScriptSegment{Text: body, CanvasIDs: curIDs, SlideIndex: -1}
			for _, id := range curIDs {
				if slide, ok := index[id]; ok {
					seg.SlideIndex = slide
					break
				}
			}
			segs = append(segs, seg)
		}
		cur = nil
		curSeen = make(map[string]bool)
		curIDs = nil
	}

	for _, line := range lines {
		if closureOpen.MatchString(line) || closureClose.MatchString(line) {
			flush()
			continue
		}

		ids := CanvasRefs(line)
		fresh := false
		for _, id := range ids {
			if !curSeen[id] {
				fresh = true
				break
			}
		}
		if fresh && len(curIDs) > 0 && (freshDecl.MatchString(line) || canvasMarker.MatchString(line)) {
			flush()
		}

		cur = append(cur, line)
		for _, id := range ids {
			if !curSeen[id] {
				curSeen[id] = true
				curIDs = append(curIDs, id)
			}
		}
	}
	flush()

	return segs
}
