package notebook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/cellsync/internal/concat"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n"]},
    {"cell_type": "code", "source": ["import os\n", "print(os.getcwd())\n"]},
    {"cell_type": "raw", "source": "raw text"},
    {"cell_type": "code", "source": "x = 1"}
  ],
  "nbformat": 4
}`

func TestParse_CodeCellsOnly(t *testing.T) {
	fragments, err := Parse("/work/nb.ipynb", []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("Expected 2 code fragments, got %d", len(fragments))
	}

	if fragments[0].Text != "import os\nprint(os.getcwd())\n" {
		t.Errorf("Joined source %q", fragments[0].Text)
	}
	if fragments[1].Text != "x = 1" {
		t.Errorf("String source %q", fragments[1].Text)
	}

	for i, f := range fragments {
		if f.LanguageID != concat.LanguageID {
			t.Errorf("Fragment %d language %q", i, f.LanguageID)
		}
		if f.Version != 1 {
			t.Errorf("Fragment %d version %d", i, f.Version)
		}
	}
}

func TestParse_FragmentURIsCarryOrder(t *testing.T) {
	fragments, err := Parse("/work/nb.ipynb", []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for i, f := range fragments {
		suffix := "#cell000" + string(rune('0'+i))
		if !strings.HasSuffix(f.URI, suffix) {
			t.Errorf("Fragment %d URI %s, expected suffix %s", i, f.URI, suffix)
		}
		if concat.FragmentOrder(f.URI) != i {
			t.Errorf("Fragment %d order key %d", i, concat.FragmentOrder(f.URI))
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{nope"},
		{"no cells", `{"nbformat": 4}`},
		{"cells not array", `{"cells": "oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("/work/nb.ipynb", []byte(tt.data))
			if !errors.Is(err, ErrInvalidNotebook) {
				t.Errorf("Expected ErrInvalidNotebook, got %v", err)
			}
		})
	}
}

func TestParse_EmptyCells(t *testing.T) {
	fragments, err := Parse("/work/nb.ipynb", []byte(`{"cells": []}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("Expected no fragments, got %d", len(fragments))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	if err := os.WriteFile(path, []byte(sampleNotebook), 0644); err != nil {
		t.Fatalf("Failed to write notebook: %v", err)
	}

	fragments, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(fragments) != 2 {
		t.Errorf("Expected 2 fragments, got %d", len(fragments))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.ipynb")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
