package deck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Validate gates every mutation. It checks, in order: the deck has at least
// one slide; each slide's HTML holds exactly one slide container; every
// script-referenced canvas id exists in that slide's own HTML; no canvas id
// is shared across slides. Any failure returns a CanvasIntegrityError and
// the caller must discard the mutation.
//
// As a final step each slide's scripts are checked for brace/paren balance;
// an unbalanced script gets missing closers appended, and if it still does
// not balance the slide is kept and the anomaly recorded, never dropped.
func (d *SlideDeck) Validate() error {
	if len(d.Slides) == 0 {
		return &CanvasIntegrityError{Violations: []string{"deck has no slides"}}
	}

	var violations []string
	owned := make(map[string]int)
	for i, s := range d.Slides {
		if n := countSlideContainers(s.HTML); n != 1 {
			violations = append(violations,
				fmt.Sprintf("slide %d has %d slide containers, want exactly 1", i, n))
		}

		local := make(map[string]bool)
		for _, id := range CanvasIDsIn(s.HTML) {
			local[id] = true
			if prev, taken := owned[id]; taken {
				violations = append(violations,
					fmt.Sprintf("canvas id %q owned by both slide %d and slide %d", id, prev, i))
				continue
			}
			owned[id] = i
		}

		for _, script := range s.Scripts {
			for _, ref := range CanvasRefs(script) {
				if !local[ref] {
					violations = append(violations,
						fmt.Sprintf("slide %d script references canvas %q missing from its HTML", i, ref))
				}
			}
		}
	}
	if len(violations) > 0 {
		return &CanvasIntegrityError{Violations: violations}
	}

	for i, s := range d.Slides {
		for j, script := range s.Scripts {
			repaired, balanced := balanceScript(script)
			s.Scripts[j] = repaired
			if !balanced {
				d.Anomalies = append(d.Anomalies,
					fmt.Sprintf("slide %d script %d still unbalanced after repair", i, j))
			}
		}
	}
	return nil
}

// countSlideContainers counts every element carrying the slide marker class
// in the fragment, nested ones included: a slide embedding another slide
// container is malformed.
func countSlideContainers(fragment string) int {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return 0
	}
	n := 0
	walk(root, func(c *html.Node) {
		if hasClass(c, SlideMarkerClass) {
			n++
		}
	})
	return n
}

// balanceScript appends missing closing parens and braces to a script whose
// delimiters do not balance. String literals, template literals, and
// comments are skipped while counting. Returns the (possibly repaired)
// script and whether it now balances; excess closers cannot be repaired by
// appending and report false.
func balanceScript(script string) (string, bool) {
	braces, parens, excess := scanDelimiters(script)
	if braces == 0 && parens == 0 && !excess {
		return script, true
	}
	if excess {
		return script, false
	}

	// Braces close before parens: truncated output almost always breaks
	// inside a config object literal, new Chart(ctx, { ...
	var b strings.Builder
	b.WriteString(script)
	for i := 0; i < braces; i++ {
		b.WriteByte('}')
	}
	for i := 0; i < parens; i++ {
		b.WriteByte(')')
	}
	repaired := b.String()
	rb, rp, rex := scanDelimiters(repaired)
	return repaired, rb == 0 && rp == 0 && !rex
}

// scanDelimiters returns the net open brace and paren counts outside of
// string literals and comments, plus whether a closer ever appeared without
// a matching opener.
func scanDelimiters(script string) (braces, parens int, excess bool) {
	const (
		code = iota
		lineComment
		blockComment
		singleQuote
		doubleQuote
		backtick
	)
	state := code
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch state {
		case lineComment:
			if c == '\n' {
				state = code
			}
		case blockComment:
			if c == '*' && i+1 < len(script) && script[i+1] == '/' {
				state = code
				i++
			}
		case singleQuote, doubleQuote, backtick:
			if c == '\\' {
				i++
				continue
			}
			if (state == singleQuote && c == '\'') ||
				(state == doubleQuote && c == '"') ||
				(state == backtick && c == '`') {
				state = code
			}
		default:
			switch c {
			case '/':
				if i+1 < len(script) {
					switch script[i+1] {
					case '/':
						state = lineComment
						i++
					case '*':
						state = blockComment
						i++
					}
				}
			case '\'':
				state = singleQuote
			case '"':
				state = doubleQuote
			case '`':
				state = backtick
			case '{':
				braces++
			case '}':
				braces--
				if braces < 0 {
					excess = true
					braces = 0
				}
			case '(':
				parens++
			case ')':
				parens--
				if parens < 0 {
					excess = true
					parens = 0
				}
			}
		}
	}
	return braces, parens, excess
}
