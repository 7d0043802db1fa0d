package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a slide reference parsed out of instruction text. Slide
// numbers are 1-based in text and 0-based here. Start/End are inclusive;
// Anchor is an insertion position (a slide count offset, so it ranges over
// [0, len]).
type Reference struct {
	Found     bool
	Start     int
	End       int
	HasAnchor bool
	Anchor    int
	Gapped    bool // "slides 2 and 5": the span covers slides the text skipped
	Phrase    string
}

var (
	beforeAfterRef = regexp.MustCompile(`(?i)\b(before|after)\s+(?:the\s+)?slide\s+(\d+)\b`)
	rangeRef       = regexp.MustCompile(`(?i)\bslides\s+(\d+)\s*(?:-|–|—|to|through)\s*(\d+)\b`)
	pairRef        = regexp.MustCompile(`(?i)\bslides\s+(\d+)\s+(?:and|&)\s+(\d+)\b`)
	singleRef      = regexp.MustCompile(`(?i)\bslide\s+(\d+)\b`)
	firstRef       = regexp.MustCompile(`(?i)\b(?:the\s+)?first\s+slide\b`)
	lastRef        = regexp.MustCompile(`(?i)\b(?:the\s+)?(?:last|final)\s+slide\b`)
	atEndRef       = regexp.MustCompile(`(?i)\bat\s+the\s+end\b`)
	atStartRef     = regexp.MustCompile(`(?i)\bat\s+the\s+(?:beginning|start|front)\b`)
)

// ParseReference extracts the first recognizable slide reference from the
// instruction. deckLen resolves "last slide" and end-of-deck anchors.
func ParseReference(text string, deckLen int) Reference {
	if m := beforeAfterRef.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[2])
		idx := n - 1
		anchor := idx
		if strings.EqualFold(m[1], "after") {
			anchor = idx + 1
		}
		return Reference{Found: true, Start: idx, End: idx, HasAnchor: true, Anchor: anchor, Phrase: m[0]}
	}
	if m := rangeRef.FindStringSubmatch(text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if b < a {
			a, b = b, a
		}
		return Reference{Found: true, Start: a - 1, End: b - 1, Phrase: m[0]}
	}
	if m := pairRef.FindStringSubmatch(text); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if b < a {
			a, b = b, a
		}
		return Reference{Found: true, Start: a - 1, End: b - 1, Gapped: b-a > 1, Phrase: m[0]}
	}
	if m := singleRef.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Reference{Found: true, Start: n - 1, End: n - 1, Phrase: m[0]}
	}
	if m := firstRef.FindString(text); m != "" {
		return Reference{Found: true, Start: 0, End: 0, HasAnchor: true, Anchor: 0, Phrase: m}
	}
	if m := lastRef.FindString(text); m != "" && deckLen > 0 {
		return Reference{Found: true, Start: deckLen - 1, End: deckLen - 1, Phrase: m}
	}
	if m := atEndRef.FindString(text); m != "" {
		return Reference{HasAnchor: true, Anchor: deckLen, Phrase: m}
	}
	if m := atStartRef.FindString(text); m != "" {
		return Reference{HasAnchor: true, Anchor: 0, Phrase: m}
	}
	return Reference{Start: -1, End: -1}
}

// ValidFor reports whether the referenced indices exist in a deck of the
// given length.
func (r Reference) ValidFor(deckLen int) bool {
	return r.Found && r.Start >= 0 && r.End >= r.Start && r.End < deckLen
}

// Describe renders the reference for user-visible messages, 1-based.
func (r Reference) Describe() string {
	if !r.Found {
		return "no slide reference"
	}
	if r.Start == r.End {
		return fmt.Sprintf("slide %d", r.Start+1)
	}
	return fmt.Sprintf("slides %d-%d", r.Start+1, r.End+1)
}
