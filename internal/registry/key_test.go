package registry

import (
	"runtime"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/user/nb.ipynb#cell0003", "/home/user/nb.ipynb"},
		{"file:///home/user/nb.ipynb", "/home/user/nb.ipynb"},
		{"vscode-notebook-cell:///nb.ipynb#cell0001", "vscode-notebook-cell:/nb.ipynb"},
		{"interactive:///Interactive-3.interactive#cell0007", "interactive:3"},
		{"interactive-input:///InteractiveInput-3", "interactive:3"},
		{"interactive:///Interactive-12.interactive", "interactive:12"},
		{"interactive-input:///InteractiveInput-NoDigits", "interactive:0"},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.uri); got != tt.want {
			t.Errorf("NormalizeKey(%s) = %q, expected %q", tt.uri, got, tt.want)
		}
	}
}

func TestNormalizeKey_InputSharesTranscriptKey(t *testing.T) {
	transcript := NormalizeKey("interactive:///Interactive-5.interactive#cell0002")
	input := NormalizeKey("interactive-input:///InteractiveInput-5")
	if transcript != input {
		t.Errorf("Transcript key %q differs from input key %q", transcript, input)
	}
}

func TestIsInteractiveKey(t *testing.T) {
	if !IsInteractiveKey("interactive:3") {
		t.Error("Expected interactive key recognized")
	}
	if IsInteractiveKey("/home/user/nb.ipynb") {
		t.Error("Expected file key rejected")
	}
}

func TestTrailingDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Interactive-3", "3"},
		{"Interactive-42", "42"},
		{"NoDigits", "0"},
		{"", "0"},
		{"123", "123"},
	}

	for _, tt := range tests {
		if got := trailingDigits(tt.in); got != tt.want {
			t.Errorf("trailingDigits(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldCase(t *testing.T) {
	got := foldCase("/Home/User/NB.ipynb")
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		if got != "/home/user/nb.ipynb" {
			t.Errorf("foldCase = %q, expected lower-cased path", got)
		}
	} else if got != "/Home/User/NB.ipynb" {
		t.Errorf("foldCase = %q, expected path unchanged", got)
	}
}
