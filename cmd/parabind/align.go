package main

import (
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/align"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
)

// AlignCmd aligns two paragraph files without touching the database.
type AlignCmd struct {
	Source  string `arg:"" help:"Source book (.usx, .xml or .json)" type:"existingfile"`
	Target  string `arg:"" help:"Target book (.usx, .xml or .json)" type:"existingfile"`
	JSON    bool   `help:"Print pairs as JSON"`
	Summary bool   `help:"Print only a summary of the pairs"`
}

type pairOut struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	SourceRange string `json:"source_range,omitempty"`
	TargetRange string `json:"target_range,omitempty"`
}

func (c *AlignCmd) Run(g *Globals) error {
	sourceBook, sources, err := loadParagraphs(c.Source, "")
	if err != nil {
		return err
	}
	targetBook, targets, err := loadParagraphs(c.Target, "")
	if err != nil {
		return err
	}
	if len(sources) == 0 || len(targets) == 0 {
		return align.ErrNothingToAlign
	}

	aligner := &align.Aligner{Logger: logging.GetLogger()}
	matches := aligner.AlignChapters(sources, targets)
	logging.Info("aligned files", "source_book", sourceBook, "target_book", targetBook, "pairs", len(matches))

	if c.Summary {
		return printJSON(g.out, align.Summarize(matches))
	}

	out := make([]pairOut, len(matches))
	for i, m := range matches {
		out[i] = pairOut{Source: m.Source.ID, Target: m.Target.ID}
		if m.Source.Range != nil {
			out[i].SourceRange = m.Source.Range.String()
		}
		if m.Target.Range != nil {
			out[i].TargetRange = m.Target.Range.String()
		}
	}
	if c.JSON {
		return printJSON(g.out, out)
	}
	for _, p := range out {
		if err := printf(g.out, "%s [%s]\t%s [%s]\n", p.Source, p.SourceRange, p.Target, p.TargetRange); err != nil {
			return err
		}
	}
	return nil
}
