package intent

import "testing"

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		deckLen int
		found   bool
		start   int
		end     int
		anchor  int
		hasAnch bool
	}{
		{"single", "change slide 3 please", 5, true, 2, 2, 0, false},
		{"range dash", "rework slides 2-4", 5, true, 1, 3, 0, false},
		{"range to", "rework slides 2 to 4", 5, true, 1, 3, 0, false},
		{"range through", "rework slides 2 through 4", 5, true, 1, 3, 0, false},
		{"range reversed", "slides 4-2", 5, true, 1, 3, 0, false},
		{"pair and", "replace slides 2 and 3", 5, true, 1, 2, 0, false},
		{"pair ampersand", "tidy slides 2 & 4", 5, true, 1, 3, 0, false},
		{"after", "insert a slide after slide 2", 5, true, 1, 1, 2, true},
		{"before", "insert a slide before slide 2", 5, true, 1, 1, 1, true},
		{"first", "fix the first slide", 5, true, 0, 0, 0, true},
		{"last", "fix the last slide", 5, true, 4, 4, 0, false},
		{"final", "polish the final slide", 3, true, 2, 2, 0, false},
		{"at end anchor only", "add a summary at the end", 5, false, 0, 0, 5, true},
		{"at start anchor only", "add a title at the beginning", 5, false, 0, 0, 0, true},
		{"none", "make it nicer", 5, false, -1, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.text, tt.deckLen)
			if ref.Found != tt.found {
				t.Fatalf("Found = %v, want %v", ref.Found, tt.found)
			}
			if ref.Found && (ref.Start != tt.start || ref.End != tt.end) {
				t.Errorf("span = [%d,%d], want [%d,%d]", ref.Start, ref.End, tt.start, tt.end)
			}
			if ref.HasAnchor != tt.hasAnch {
				t.Errorf("HasAnchor = %v, want %v", ref.HasAnchor, tt.hasAnch)
			}
			if ref.HasAnchor && ref.Anchor != tt.anchor {
				t.Errorf("Anchor = %d, want %d", ref.Anchor, tt.anchor)
			}
		})
	}
}

func TestParseReferenceGappedPair(t *testing.T) {
	if ref := ParseReference("rework slides 2 and 3", 5); ref.Gapped {
		t.Errorf("adjacent pair must not be gapped")
	}
	ref := ParseReference("rework slides 2 and 5", 5)
	if !ref.Found || ref.Start != 1 || ref.End != 4 {
		t.Fatalf("span = [%d,%d], want [1,4]", ref.Start, ref.End)
	}
	if !ref.Gapped {
		t.Errorf("non-adjacent pair must be gapped")
	}
}

func TestReferenceValidFor(t *testing.T) {
	ref := ParseReference("edit slide 7", 5)
	if ref.ValidFor(5) {
		t.Errorf("slide 7 must not be valid for a 5-slide deck")
	}
	if !ref.ValidFor(7) {
		t.Errorf("slide 7 must be valid for a 7-slide deck")
	}
	if (Reference{Start: -1, End: -1}).ValidFor(5) {
		t.Errorf("empty reference must not validate")
	}
}

func TestReferenceDescribe(t *testing.T) {
	if got := ParseReference("slide 3", 5).Describe(); got != "slide 3" {
		t.Errorf("Describe = %q", got)
	}
	if got := ParseReference("slides 2-4", 5).Describe(); got != "slides 2-4" {
		t.Errorf("Describe = %q", got)
	}
}
