// Package notebook extracts code-cell fragments from Jupyter notebook
// files for feeding into a concatenation.
package notebook

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/cellsync/internal/concat"
	"github.com/dshills/cellsync/internal/protocol"
)

// ErrInvalidNotebook indicates the file is not a notebook document.
var ErrInvalidNotebook = errors.New("invalid notebook document")

// Load reads a .ipynb file and returns its code cells as fragments in
// notebook order. Markdown and raw cells are skipped; they never take
// part in the concatenation.
func Load(path string) ([]concat.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("notebook: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse extracts code-cell fragments from notebook JSON. Each fragment
// URI is the owner document URI with a #cellNNNN fragment carrying the
// cell's order key.
func Parse(path string, data []byte) ([]concat.Fragment, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidNotebook, path)
	}

	cells := gjson.GetBytes(data, "cells")
	if !cells.IsArray() {
		return nil, fmt.Errorf("%w: %s has no cells array", ErrInvalidNotebook, path)
	}

	owner := string(protocol.FilePathToURI(path))

	var fragments []concat.Fragment
	index := 0
	cells.ForEach(func(_, cell gjson.Result) bool {
		if cell.Get("cell_type").String() != "code" {
			return true
		}
		fragments = append(fragments, concat.Fragment{
			URI:        fmt.Sprintf("%s#cell%04d", owner, index),
			LanguageID: concat.LanguageID,
			Version:    1,
			Text:       cellSource(cell.Get("source")),
		})
		index++
		return true
	})

	return fragments, nil
}

// cellSource joins a cell source, which the notebook format stores as
// either a string or an array of line strings.
func cellSource(source gjson.Result) string {
	if !source.IsArray() {
		return source.String()
	}
	var text string
	source.ForEach(func(_, line gjson.Result) bool {
		text += line.String()
		return true
	})
	return text
}
