package deck

import (
	"strings"
	"testing"
)

func TestCanvasRefs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "getElementById single quotes",
			text: `const ctx = document.getElementById('salesChart');`,
			want: []string{"salesChart"},
		},
		{
			name: "getElementById double quotes",
			text: `const ctx = document.getElementById("salesChart");`,
			want: []string{"salesChart"},
		},
		{
			name: "querySelector hash",
			text: `const ctx = document.querySelector('#trend-chart');`,
			want: []string{"trend-chart"},
		},
		{
			name: "explicit marker",
			text: "// Canvas: pieChart\nnew Chart(ctx, {});",
			want: []string{"pieChart"},
		},
		{
			name: "first occurrence order across patterns",
			text: "// Canvas: first\nconst a = document.getElementById('second');\nconst b = document.querySelector('#third');",
			want: []string{"first", "second", "third"},
		},
		{
			name: "duplicates collapse",
			text: "const a = document.getElementById('x');\nconst b = document.getElementById('x');",
			want: []string{"x"},
		},
		{
			name: "no references",
			text: "console.log('hello');",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanvasRefs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSplitScriptMultiChartBlock(t *testing.T) {
	index := map[string]int{"barChart": 0, "lineChart": 1}
	text := `const barCtx = document.getElementById('barChart');
new Chart(barCtx, { type: 'bar', data: barData });
const lineCtx = document.getElementById('lineChart');
new Chart(lineCtx, { type: 'line', data: lineData });`

	segs := SplitScript(text, index)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %v", len(segs), segs)
	}
	if segs[0].SlideIndex != 0 || !strings.Contains(segs[0].Text, "barChart") {
		t.Errorf("first segment should bind barChart to slide 0, got index %d: %s",
			segs[0].SlideIndex, segs[0].Text)
	}
	if segs[1].SlideIndex != 1 || !strings.Contains(segs[1].Text, "lineChart") {
		t.Errorf("second segment should bind lineChart to slide 1, got index %d: %s",
			segs[1].SlideIndex, segs[1].Text)
	}
	if strings.Contains(segs[0].Text, "lineChart") {
		t.Errorf("first segment leaked the second chart's code")
	}
}

func TestSplitScriptRepeatedIDStaysInSegment(t *testing.T) {
	// Re-referencing an id already seen in the segment is not a boundary.
	index := map[string]int{"chart": 0}
	text := `const ctx = document.getElementById('chart');
const again = document.getElementById('chart');
new Chart(ctx, {});`

	segs := SplitScript(text, index)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].SlideIndex != 0 {
		t.Errorf("expected slide 0, got %d", segs[0].SlideIndex)
	}
}

func TestSplitScriptMarkerBoundary(t *testing.T) {
	index := map[string]int{"a": 0, "b": 1}
	text := `// Canvas: a
setup(a);
// Canvas: b
setup(b);`

	segs := SplitScript(text, index)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].SlideIndex != 0 || segs[1].SlideIndex != 1 {
		t.Errorf("expected slide indices 0 and 1, got %d and %d",
			segs[0].SlideIndex, segs[1].SlideIndex)
	}
}

func TestSplitScriptUnresolvable(t *testing.T) {
	segs := SplitScript("console.log('nothing to bind');", map[string]int{})
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].SlideIndex != -1 {
		t.Errorf("expected unresolved index -1, got %d", segs[0].SlideIndex)
	}
}

func TestSplitScriptUnwrapsClosures(t *testing.T) {
	index := map[string]int{"chart": 0}
	text := `(function() {
const ctx = document.getElementById('chart');
new Chart(ctx, {});
})();`

	segs := SplitScript(text, index)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if strings.Contains(segs[0].Text, "function()") {
		t.Errorf("wrapper lines should be dropped, got %q", segs[0].Text)
	}
	if segs[0].SlideIndex != 0 {
		t.Errorf("expected slide 0, got %d", segs[0].SlideIndex)
	}
}
