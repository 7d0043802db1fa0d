package deck

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// MergeCSS merges replacement CSS into existing CSS at selector level.
//
// Rules whose selector matches an existing rule overwrite it in place, so
// rule order (and therefore cascade behavior) is preserved; new selectors
// are appended after all existing rules in replacement order. Untouched
// selectors pass through unchanged.
//
// An empty replacement returns the existing CSS byte-identical. Any parse
// error returns the existing CSS unchanged together with a *CssMergeWarning:
// malformed model output must never corrupt working style. The warning is
// the only error this function produces and is never fatal.
func MergeCSS(existing, replacement string) (string, error) {
	if strings.TrimSpace(replacement) == "" {
		return existing, nil
	}

	repl, err := parser.Parse(replacement)
	if err != nil {
		return existing, &CssMergeWarning{Err: err}
	}

	var base []*css.Rule
	if strings.TrimSpace(existing) != "" {
		sheet, err := parser.Parse(existing)
		if err != nil {
			// Existing CSS we cannot parse cannot be merged into at
			// selector level; keeping it untouched beats risking it.
			return existing, &CssMergeWarning{Err: err}
		}
		base = sheet.Rules
	}

	position := make(map[string]int, len(base))
	for i, r := range base {
		position[ruleKey(r)] = i
	}

	merged := append([]*css.Rule(nil), base...)
	for _, r := range repl.Rules {
		if i, ok := position[ruleKey(r)]; ok {
			merged[i] = r
			continue
		}
		position[ruleKey(r)] = len(merged)
		merged = append(merged, r)
	}

	return renderStylesheet(merged), nil
}

// ruleKey identifies a rule for merge purposes. Comma-separated compound
// selectors form one key; at-rules are keyed by name plus prelude.
func ruleKey(r *css.Rule) string {
	if r.Kind == css.AtRule {
		return normalizeSpace(r.Name + " " + r.Prelude)
	}
	return normalizeSpace(strings.Join(r.Selectors, ", "))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func renderStylesheet(rules []*css.Rule) string {
	var b strings.Builder
	for i, r := range rules {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRule(&b, r, "")
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeRule(b *strings.Builder, r *css.Rule, indent string) {
	if r.Kind == css.AtRule {
		b.WriteString(indent)
		b.WriteString(r.Name)
		if p := strings.TrimSpace(r.Prelude); p != "" {
			b.WriteString(" ")
			b.WriteString(p)
		}
		switch {
		case r.EmbedsRules():
			b.WriteString(" {\n")
			for _, nested := range r.Rules {
				writeRule(b, nested, indent+"  ")
			}
			b.WriteString(indent + "}\n")
		case len(r.Declarations) > 0:
			writeDeclarations(b, r.Declarations, indent)
		default:
			b.WriteString(";\n")
		}
		return
	}

	b.WriteString(indent)
	b.WriteString(strings.Join(r.Selectors, ", "))
	writeDeclarations(b, r.Declarations, indent)
}

func writeDeclarations(b *strings.Builder, decls []*css.Declaration, indent string) {
	b.WriteString(" {\n")
	for _, d := range decls {
		b.WriteString(indent + "  " + d.Property + ": " + d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";\n")
	}
	b.WriteString(indent + "}\n")
}
