package concat

import (
	"testing"
)

func TestIsSpecialLine(t *testing.T) {
	tests := []struct {
		line    string
		special bool
	}{
		{"%matplotlib inline", true},
		{"!pip install foo", true},
		{"await fetch()", true},
		{"await(x)", true},
		{"  %magic", true},
		{"\t!ls", true},
		{"awaiting = 1", false},
		{"await", false},
		{"x = 1", false},
		{"", false},
		{"   ", false},
		{"# %not a magic", false},
	}

	for _, tt := range tests {
		if got := isSpecialLine(tt.line); got != tt.special {
			t.Errorf("isSpecialLine(%q) = %v, expected %v", tt.line, got, tt.special)
		}
	}
}

func TestNormalizeFragmentText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "\n"},
		{"x = 1", "x = 1\n"},
		{"x = 1\n", "x = 1\n"},
		{"x = 1\n\n", "x = 1\n\n"},
	}

	for _, tt := range tests {
		if got := normalizeFragmentText(tt.in); got != tt.want {
			t.Errorf("normalizeFragmentText(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitFragment_PlainText(t *testing.T) {
	spans := splitFragment(cellA, 0, "x = 1\ny = 2\n", 10)

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.synthetic {
		t.Error("Plain text produced a synthetic span")
	}
	if s.start != 10 || s.end != 22 {
		t.Errorf("Concat extent [%d,%d), expected [10,22)", s.start, s.end)
	}
	if s.realStart != 0 || s.realEnd != 12 {
		t.Errorf("Real extent [%d,%d), expected [0,12)", s.realStart, s.realEnd)
	}
	if s.text != s.realText {
		t.Error("Real span text differs between axes")
	}
}

func TestSplitFragment_MagicLine(t *testing.T) {
	spans := splitFragment(cellA, 0, "%foo = 2\nprint(foo)\n", 0)

	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans, got %d", len(spans))
	}

	if spans[0].text != "%foo = 2" || spans[0].synthetic {
		t.Errorf("Span 0 = %q (synthetic=%v), expected real magic line content", spans[0].text, spans[0].synthetic)
	}
	if spans[1].text != TypeIgnoreSuffix || !spans[1].synthetic {
		t.Errorf("Span 1 = %q (synthetic=%v), expected synthetic annotation", spans[1].text, spans[1].synthetic)
	}
	if spans[1].realStart != spans[1].realEnd {
		t.Error("Synthetic span advances the real axis")
	}
	if spans[2].text != "\nprint(foo)\n" || spans[2].synthetic {
		t.Errorf("Span 2 = %q, expected real remainder starting at the terminator", spans[2].text)
	}
	if spans[2].realStart != len("%foo = 2") {
		t.Errorf("Span 2 real start %d, expected %d", spans[2].realStart, len("%foo = 2"))
	}
}

func TestSplitFragment_ConsecutiveMagicLines(t *testing.T) {
	spans := splitFragment(cellA, 0, "%a\n%b\n", 0)

	var concat, real string
	for _, s := range spans {
		concat += s.text
		real += s.realText
	}
	if concat != "%a"+TypeIgnoreSuffix+"\n%b"+TypeIgnoreSuffix+"\n" {
		t.Errorf("Concatenated text %q", concat)
	}
	if real != "%a\n%b\n" {
		t.Errorf("Real text %q, expected original", real)
	}
}

func TestFragmentOrder(t *testing.T) {
	tests := []struct {
		uri   string
		order int
	}{
		{"file:///nb.ipynb#cell0000", 0},
		{"file:///nb.ipynb#cell0007", 7},
		{"file:///nb.ipynb#cell0123", 123},
		{"interactive:///Interactive-1.interactive#cell0002", 2},
		{"interactive-input:///InteractiveInput-1", OrderInteractiveInput},
		{"file:///nb.ipynb", 0},
		{"file:///nb.ipynb#nodigits", 0},
	}

	for _, tt := range tests {
		if got := FragmentOrder(tt.uri); got != tt.order {
			t.Errorf("FragmentOrder(%s) = %d, expected %d", tt.uri, got, tt.order)
		}
	}
}

func TestOrderSortsAfter(t *testing.T) {
	tests := []struct {
		existing, candidate int
		after               bool
	}{
		{0, 1, false},
		{2, 1, true},
		{1, 1, false},
		{OrderInteractiveInput, 5, true},
		{5, OrderInteractiveInput, false},
		{OrderInteractiveInput, OrderInteractiveInput, false},
	}

	for _, tt := range tests {
		if got := orderSortsAfter(tt.existing, tt.candidate); got != tt.after {
			t.Errorf("orderSortsAfter(%d, %d) = %v, expected %v", tt.existing, tt.candidate, got, tt.after)
		}
	}
}

func TestDeriveURI_Format(t *testing.T) {
	uri := string(DeriveURI("/some/notebook.ipynb"))
	if len(uri) != len("file:///")+syntheticURIHexLen+len(".py") {
		t.Errorf("Derived URI %q has unexpected length", uri)
	}
	if uri[:8] != "file:///" {
		t.Errorf("Derived URI %q does not use the file scheme", uri)
	}
	if uri[len(uri)-3:] != ".py" {
		t.Errorf("Derived URI %q does not carry the .py extension", uri)
	}
}
