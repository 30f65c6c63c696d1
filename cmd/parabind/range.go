package main

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/verse"
)

// RangeGroup contains verse range utilities.
type RangeGroup struct {
	Count   RangeCountCmd   `cmd:"" help:"Print the number of verses a range touches"`
	Overlap RangeOverlapCmd `cmd:"" help:"Report whether two ranges share a verse"`
	Parse   RangeParseCmd   `cmd:"" help:"Print the canonical and property forms of a range"`
}

// RangeCountCmd prints the verse count of a range.
type RangeCountCmd struct {
	Range string `arg:"" help:"Range such as 4-5b"`
}

func (c *RangeCountCmd) Run(g *Globals) error {
	r, err := verse.ParseRange(c.Range)
	if err != nil {
		return err
	}
	return printf(g.out, "%d\n", r.VerseCount())
}

// RangeOverlapCmd reports whether two ranges overlap.
type RangeOverlapCmd struct {
	A string `arg:"" help:"First range"`
	B string `arg:"" help:"Second range"`
}

func (c *RangeOverlapCmd) Run(g *Globals) error {
	a, err := verse.ParseRange(c.A)
	if err != nil {
		return err
	}
	b, err := verse.ParseRange(c.B)
	if err != nil {
		return err
	}
	return printf(g.out, "%t\n", a.Overlaps(b))
}

// RangeParseCmd prints a range in both of its forms.
type RangeParseCmd struct {
	Range string `arg:"" help:"Range such as 4-5b"`
}

func (c *RangeParseCmd) Run(g *Globals) error {
	r, err := verse.ParseRange(c.Range)
	if err != nil {
		return err
	}
	return printJSON(g.out, map[string]any{
		"range":      r.String(),
		"verses":     r.VerseCount(),
		"properties": r.Properties(),
	})
}
