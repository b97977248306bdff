package protocol

import (
	"runtime"
	"testing"
)

func TestFilePathToURI(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	tests := []struct {
		path string
		want DocumentURI
	}{
		{"/home/user/nb.ipynb", "file:///home/user/nb.ipynb"},
		{"/tmp/a b.ipynb", "file:///tmp/a%20b.ipynb"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FilePathToURI(tt.path); got != tt.want {
			t.Errorf("FilePathToURI(%q) = %q, expected %q", tt.path, got, tt.want)
		}
	}
}

func TestURIToFilePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	tests := []struct {
		uri  DocumentURI
		want string
	}{
		{"file:///home/user/nb.ipynb", "/home/user/nb.ipynb"},
		{"file:///tmp/a%20b.ipynb", "/tmp/a b.ipynb"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := URIToFilePath(tt.uri); got != tt.want {
			t.Errorf("URIToFilePath(%q) = %q, expected %q", tt.uri, got, tt.want)
		}
	}
}

func TestURIRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	paths := []string{
		"/home/user/nb.ipynb",
		"/tmp/a b.ipynb",
		"/deeply/nested/dir/file.py",
	}

	for _, path := range paths {
		if got := URIToFilePath(FilePathToURI(path)); got != path {
			t.Errorf("Round trip of %q produced %q", path, got)
		}
	}
}
