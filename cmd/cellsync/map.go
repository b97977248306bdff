package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/cellsync/internal/logging"
	"github.com/dshills/cellsync/internal/notebook"
	"github.com/dshills/cellsync/internal/protocol"
	"github.com/dshills/cellsync/internal/registry"
)

var mapCmd = &cobra.Command{
	Use:   "map <notebook.ipynb> <cell> <line> <character>",
	Short: "Translate a cell-local position to concatenated coordinates and back",
	Args:  cobra.ExactArgs(4),
	RunE:  runMap,
}

func runMap(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}

	cell, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("map: invalid cell index %q", args[1])
	}
	line, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("map: invalid line %q", args[2])
	}
	char, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("map: invalid character %q", args[3])
	}

	fragments, err := notebook.Load(args[0])
	if err != nil {
		return err
	}
	if cell < 0 || cell >= len(fragments) {
		return fmt.Errorf("map: notebook has %d code cells, no cell %d", len(fragments), cell)
	}

	reg := registry.New(registry.WithLogger(logging.Default()))
	for _, f := range fragments {
		reg.Open(f.URI, f.Text, f.Version, f.LanguageID)
	}

	c, ok := reg.Get(fragments[cell].URI)
	if !ok {
		return fmt.Errorf("map: no concatenation for %s", args[0])
	}

	local := protocol.Position{Line: line, Character: char}
	pos, ok := c.PositionFromFragmentLocation(fragments[cell].URI, local)
	if !ok {
		return fmt.Errorf("map: position %d:%d is outside cell %d", line, char, cell)
	}
	fmt.Printf("cell %d %d:%d -> %s %d:%d\n", cell, line, char, c.URI(), pos.Line, pos.Character)

	fragment, back, ok := c.FragmentLocationFromPosition(pos)
	if !ok {
		return fmt.Errorf("map: concatenated position %d:%d did not resolve", pos.Line, pos.Character)
	}
	fmt.Printf("%s %d:%d -> %s %d:%d\n", c.URI(), pos.Line, pos.Character, fragment, back.Line, back.Character)
	return nil
}
