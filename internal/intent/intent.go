// Package intent decides what a free-text instruction is allowed to do to a
// presentation: add slides, edit specific slides, or regenerate the deck.
// Every path through the decision table ends in a well-formed operation or
// an explicit request for clarification, never in a silent whole-deck
// replacement.
package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

// Kind is the operation class a decision resolves to.
type Kind int

const (
	Generation Kind = iota
	Add
	Edit
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Generation:
		return "generation"
	case Add:
		return "add"
	case Edit:
		return "edit"
	default:
		return "ambiguous"
	}
}

// Selection is an explicit slide selection supplied by the caller's UI:
// the selected indices and their current HTML.
type Selection struct {
	Indices []int
	HTML    []string
}

// Signal is the raw phrase-level classification of an instruction. The
// detectors are heuristic; Classifier lets a stronger approach replace
// them without touching reconciliation.
type Signal struct {
	Generate  bool
	Replace   bool
	Add       bool
	Edit      bool
	Expand    bool
	StyleOnly bool
}

// Classifier turns instruction text into an intent signal.
type Classifier interface {
	Classify(text string) Signal
}

// Decision is the resolved outcome: the operation, its target window or
// insertion position, or, for Ambiguous, the clarification to ask
// instead of mutating anything.
type Decision struct {
	Kind          Kind
	TargetStart   int // first slide of the edit window
	TargetCount   int // number of slides in the edit window
	InsertAt      int // insertion position for Add
	Expand        bool
	StyleOnly     bool
	Selection     *Selection
	Clarification string
	Note          string // user-visible discrepancy note, e.g. selection vs text reference
}

// RuleClassifier is the default heuristic classifier: ordered word-pattern
// matching over the instruction.
type RuleClassifier struct{}

var (
	generatePhrase = regexp.MustCompile(`(?i)\b(?:generate|create|build|make)\s+(?:me\s+)?(?:a\s+|an\s+|the\s+)?(?:new\s+)?(?:\d+\s+)?(?:presentation|deck|slideshow|slides?)\b`)
	// "replace ... slides" needs the entire/whole qualifier: without it,
	// "replace slides 2 and 3" is a scoped edit, not a rebuild.
	replacePhrase  = regexp.MustCompile(`(?i)\b(?:start\s+over|from\s+scratch|regenerate|replace\s+(?:the\s+|my\s+)?(?:entire\s+|whole\s+)(?:presentation|deck|slides)|redo\s+(?:the\s+)?(?:entire\s+|whole\s+)?(?:presentation|deck))\b`)
	addPhrase      = regexp.MustCompile(`(?i)\b(?:add|insert|append)\s+(?:\d+\s+)?(?:a\s+|an\s+|another\s+|some\s+)?(?:new\s+)?(?:[\w-]+\s+){0,2}slides?\b`)
	targetedPhrase = regexp.MustCompile(`(?i)\b(?:to|on|in|into|onto)\s+(?:the\s+)?slides?\s*\d`)
	editPhrase     = regexp.MustCompile(`(?i)\b(?:change|update|edit|modify|fix|adjust|tweak|revise|rewrite|reword|rephrase|improve|polish|restyle|recolor|resize|move|align|center|shorten|simplify|translate|set|remove|delete|swap|replace)\b`)
	expandPhrase   = regexp.MustCompile(`(?i)\b(?:expand|elaborate|flesh\s+out|split|break\s+(?:[\w]+\s+)?into|condense|merge)\b`)
	stylePhrase    = regexp.MustCompile(`(?i)\b(?:colors?|colours?|background|font|styles?|styling|theme|layout|spacing|margins?|padding|bigger|smaller|larger|bold|italic|palette|gradient|shadow|borders?|rounded|dark\s+mode|light\s+mode)\b`)
	chartDataWords = regexp.MustCompile(`(?i)\b(?:data|charts?|graphs?|values?|numbers?|axis|axes|series|legend|plot)\b`)
)

func (RuleClassifier) Classify(text string) Signal {
	sig := Signal{
		Generate: generatePhrase.MatchString(text),
		Replace:  replacePhrase.MatchString(text),
		Add:      addPhrase.MatchString(text),
		Edit:     editPhrase.MatchString(text),
		Expand:   expandPhrase.MatchString(text),
	}
	// "add a chart to slide 2" targets an existing slide; the add verb is
	// about slide content, not a new slide.
	if sig.Add && targetedPhrase.MatchString(text) {
		sig.Add = false
		sig.Edit = true
	}
	sig.StyleOnly = stylePhrase.MatchString(text) && !chartDataWords.MatchString(text)
	return sig
}

// Resolve runs the ordered decision table over the instruction, the
// optional explicit selection, and the current deck (nil when no deck
// exists yet). First match wins; there is no fallthrough to whole-deck
// replacement.
func Resolve(text string, sel *Selection, d *deck.SlideDeck, c Classifier) Decision {
	if c == nil {
		c = RuleClassifier{}
	}
	sig := c.Classify(text)
	deckLen := 0
	if d != nil {
		deckLen = len(d.Slides)
	}
	ref := ParseReference(text, deckLen)

	// 1. Explicit selection always wins. A conflicting text reference is
	// reported, never silently dropped.
	if sel != nil && len(sel.Indices) > 0 {
		note := ""
		if ref.Found && !refMatchesSelection(ref, sel) {
			note = fmt.Sprintf("The instruction mentions %s but %s selected; applying to the selection.",
				ref.Describe(), describeIndices(sel.Indices))
		}
		if sig.Add {
			return Decision{
				Kind:     Add,
				InsertAt: maxIndex(sel.Indices) + 1,
				Note:     note,
			}
		}
		start, count, gapped := selectionSpan(sel.Indices)
		if gapped && d != nil && start+count <= deckLen {
			// The edit window is contiguous, so the unselected slides in
			// between get rewritten too. Hand the model all of them and
			// tell the user.
			sel = synthesizeSelection(d, start, start+count-1)
			gap := fmt.Sprintf("The selection skips slides; slides %d-%d will be rewritten together.", start+1, start+count)
			if note == "" {
				note = gap
			} else {
				note += " " + gap
			}
		}
		return Decision{
			Kind:        Edit,
			TargetStart: start,
			TargetCount: count,
			Expand:      sig.Expand,
			StyleOnly:   sig.StyleOnly,
			Selection:   sel,
			Note:        note,
		}
	}

	// 2 & 3. Generate phrasing may only produce a deck when there is
	// nothing to destroy or the user explicitly asked to replace. An
	// explicit replace phrase on its own ("start over with ...") is
	// already authorization to rebuild, but a rebuild naming concrete
	// slides ("regenerate slide 3") is an edit of those slides, never a
	// whole-deck replacement.
	if sig.Generate || sig.Replace {
		if ref.ValidFor(deckLen) && (sig.Edit || sig.Replace || !ref.HasAnchor) {
			return Decision{
				Kind:        Edit,
				TargetStart: ref.Start,
				TargetCount: ref.End - ref.Start + 1,
				Expand:      sig.Expand,
				StyleOnly:   sig.StyleOnly,
				Selection:   synthesizeSelection(d, ref.Start, ref.End),
				Note:        gapNote(ref),
			}
		}
		if deckLen == 0 || sig.Replace {
			return Decision{Kind: Generation}
		}
		return Decision{
			Kind:          Ambiguous,
			Clarification: `A presentation already exists. Should I add these as new slides or replace the whole presentation? Say "add ..." to extend it or "start over ..." to rebuild it.`,
		}
	}

	// 4. Add phrasing: position from the text reference, default end.
	if sig.Add {
		pos := deckLen
		if ref.HasAnchor {
			pos = ref.Anchor
		} else if ref.ValidFor(deckLen) {
			pos = ref.End + 1
		}
		if pos < 0 {
			pos = 0
		}
		if pos > deckLen {
			pos = deckLen
		}
		return Decision{Kind: Add, InsertAt: pos}
	}

	// 5 & 6. Edit phrasing needs a resolvable target; the selection
	// context is synthesized from the live deck so "change slide 7's
	// background" works without manual selection.
	if sig.Edit || sig.Expand {
		if ref.ValidFor(deckLen) {
			return Decision{
				Kind:        Edit,
				TargetStart: ref.Start,
				TargetCount: ref.End - ref.Start + 1,
				Expand:      sig.Expand,
				StyleOnly:   sig.StyleOnly,
				Selection:   synthesizeSelection(d, ref.Start, ref.End),
				Note:        gapNote(ref),
			}
		}
		return Decision{
			Kind:          Ambiguous,
			Clarification: `Which slide should I change? Reference it like "slide 3" or "slides 2-4", or select it first.`,
		}
	}

	// Nothing matched. With no deck there is nothing to lose; otherwise
	// ask rather than guess.
	if deckLen == 0 {
		return Decision{Kind: Generation}
	}
	return Decision{
		Kind:          Ambiguous,
		Clarification: "I couldn't tell what to do with that. Do you want to add slides, edit a specific slide, or start the presentation over?",
	}
}

func synthesizeSelection(d *deck.SlideDeck, start, end int) *Selection {
	sel := &Selection{}
	for i := start; i <= end; i++ {
		sel.Indices = append(sel.Indices, i)
		sel.HTML = append(sel.HTML, d.Slides[i].HTML)
	}
	return sel
}

func refMatchesSelection(ref Reference, sel *Selection) bool {
	idx := append([]int(nil), sel.Indices...)
	sort.Ints(idx)
	want := ref.End - ref.Start + 1
	if len(idx) != want {
		return false
	}
	for i, v := range idx {
		if v != ref.Start+i {
			return false
		}
	}
	return true
}

// selectionSpan widens a selection to its contiguous window. gapped reports
// that the window covers indices the selection did not include.
func selectionSpan(indices []int) (start, count int, gapped bool) {
	idx := append([]int(nil), indices...)
	sort.Ints(idx)
	distinct := 0
	prev := -1
	for _, v := range idx {
		if v != prev {
			distinct++
			prev = v
		}
	}
	start = idx[0]
	count = idx[len(idx)-1] - idx[0] + 1
	return start, count, count > distinct
}

// gapNote renders the discrepancy note for a reference like "slides 2 and 5"
// whose window swallows the slides in between.
func gapNote(ref Reference) string {
	if !ref.Gapped {
		return ""
	}
	return fmt.Sprintf("The instruction names slides %d and %d; the slides between them will be rewritten too.", ref.Start+1, ref.End+1)
}

func maxIndex(indices []int) int {
	m := indices[0]
	for _, v := range indices[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func describeIndices(indices []int) string {
	idx := append([]int(nil), indices...)
	sort.Ints(idx)
	var parts []string
	for _, v := range idx {
		parts = append(parts, fmt.Sprintf("%d", v+1))
	}
	if len(parts) == 1 {
		return "slide " + parts[0] + " is"
	}
	return "slides " + strings.Join(parts, ", ") + " are"
}
