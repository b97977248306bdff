package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/cellsync/internal/logging"
	"github.com/dshills/cellsync/internal/notebook"
	"github.com/dshills/cellsync/internal/registry"
)

var renderCmd = &cobra.Command{
	Use:   "render <notebook.ipynb>",
	Short: "Print the concatenated document for a notebook",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().Bool("cells", false, "print each cell's extent in the concatenated document")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fragments, err := notebook.Load(args[0])
	if err != nil {
		return err
	}

	reg := registry.New(registry.WithLogger(logging.Default()))
	for _, f := range fragments {
		reg.Open(f.URI, f.Text, f.Version, f.LanguageID)
	}

	if len(fragments) == 0 {
		fmt.Println("(no code cells)")
		return nil
	}

	c, ok := reg.Get(fragments[0].URI)
	if !ok {
		return fmt.Errorf("render: no concatenation for %s", args[0])
	}

	gutter := color.New(color.FgHiBlack)
	synthetic := color.New(color.Faint)
	for _, line := range c.Lines() {
		gutter.Printf("%4d | ", line.Number+1)
		if !cfg.ShowSynthetic && line.Fragment == "" {
			fmt.Println()
			continue
		}
		if line.Fragment == "" {
			synthetic.Println(line.Text)
		} else {
			fmt.Println(line.Text)
		}
	}

	if showCells, _ := cmd.Flags().GetBool("cells"); showCells {
		fmt.Println()
		for _, uri := range c.FragmentURIs() {
			rng, ok := c.RangeOfFragment(uri)
			if !ok {
				continue
			}
			fmt.Printf("%s: lines %d-%d\n", uri, rng.Start.Line+1, rng.End.Line)
		}
	}
	return nil
}
