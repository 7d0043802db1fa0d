package composer

import (
	"fmt"
	"strings"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/deck"
)

const generationSystemPrompt = `You are a presentation designer. You produce complete HTML slide decks.

Rules:
- Every slide is one <div class="slide"> element. Do not nest slide divs.
- Charts use <canvas> elements with unique ids and Chart.js. Load Chart.js
  with a <script src> tag. Write one <script> block per chart canvas.
- Shared styling goes in a single <style> element.
- Return only the HTML document. No commentary, no markdown fences.`

const editSystemPrompt = `You are a presentation designer editing specific slides of an existing deck.

Rules:
- Return ONLY the replacement slides, each as one <div class="slide"> element.
- Do not return slides you were not asked to change.
- Keep every <canvas> element's id exactly as given unless asked to remove the chart.
- If styling changes are needed, include one <style> element with only the
  changed rules.
- Return only HTML. No commentary, no markdown fences.`

// buildGenerationPrompt renders the user prompt for a whole-deck generation.
func buildGenerationPrompt(topic, theme string, maxSlides int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a presentation about: %s\n\n", topic)
	fmt.Fprintf(&b, "Use at most %d slides.\n", maxSlides)
	if theme != "" && theme != "default" {
		fmt.Fprintf(&b, "Style the deck with a %s theme.\n", theme)
	}
	return b.String()
}

// buildEditPrompt renders the user prompt for a scoped edit. Only the slides
// in the resolved window are shown to the model; the shared CSS is included
// read-only so style edits can reference existing rules.
func buildEditPrompt(instruction string, slides []*deck.Slide, css string, adding bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Instruction: %s\n\n", instruction)

	if adding {
		b.WriteString("Produce the new slide(s) to insert. Existing slides are not shown; match the deck's shared styles below.\n\n")
	} else {
		b.WriteString("These are the slides to change:\n\n")
		for i, s := range slides {
			fmt.Fprintf(&b, "--- slide %d ---\n%s\n", i+1, s.HTML)
			for _, script := range s.Scripts {
				fmt.Fprintf(&b, "<script>\n%s\n</script>\n", script)
			}
		}
		b.WriteString("\n")
	}

	if strings.TrimSpace(css) != "" {
		fmt.Fprintf(&b, "Shared deck CSS (reference; return only changed rules):\n<style>\n%s\n</style>\n", css)
	}
	return b.String()
}
