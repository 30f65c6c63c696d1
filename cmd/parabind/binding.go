package main

import (
	"context"
	"text/tabwriter"
	"time"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/align"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/archive"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/binding"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
)

// BindingGroup contains stored binding operations.
type BindingGroup struct {
	Create BindingCreateCmd `cmd:"" help:"Align two stored books and save the binding"`
	List   BindingListCmd   `cmd:"" help:"List stored bindings"`
	Show   BindingShowCmd   `cmd:"" help:"Print the pairs of a binding"`
	Export BindingExportCmd `cmd:"" help:"Export a binding (.json, .json.xz) or a bundle with its books (.tar.xz, .tar.gz)"`
	Import BindingImportCmd `cmd:"" help:"Import a binding file or bundle"`
	Delete BindingDeleteCmd `cmd:"" help:"Delete a stored binding"`
}

// BindingCreateCmd aligns two stored books.
type BindingCreateCmd struct {
	Source string `arg:"" help:"Source book ID"`
	Target string `arg:"" help:"Target book ID"`
}

func (c *BindingCreateCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := binding.Create(ctx, s, s, c.Source, c.Target,
		binding.WithAligner(&align.Aligner{Logger: logging.GetLogger()}))
	if err != nil {
		return err
	}
	return printf(g.out, "created binding %s: %d pairs\n", b.ID, len(b.Pairs))
}

// BindingListCmd lists stored bindings.
type BindingListCmd struct {
	JSON bool `help:"Print as JSON"`
}

func (c *BindingListCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.Bindings(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g.out, list)
	}
	tw := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
	printf(tw, "ID\tSOURCE\tTARGET\tPAIRS\tCREATED\n")
	for _, b := range list {
		printf(tw, "%s\t%s\t%s\t%d\t%s\n", b.ID, b.SourceBook, b.TargetBook, b.Pairs, b.Created.Format(time.RFC3339))
	}
	return tw.Flush()
}

// BindingShowCmd prints a stored binding.
type BindingShowCmd struct {
	ID   string `arg:"" help:"Binding ID"`
	JSON bool   `help:"Print as JSON"`
}

func (c *BindingShowCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.Binding(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g.out, b)
	}
	if err := printf(g.out, "binding %s: %s -> %s, %d pairs, fingerprint %s\n",
		b.ID, b.SourceBook, b.TargetBook, len(b.Pairs), b.Fingerprint); err != nil {
		return err
	}
	for _, p := range b.Pairs {
		if err := printf(g.out, "%s\t%s\n", p.SourceID, p.TargetID); err != nil {
			return err
		}
	}
	return nil
}

// BindingExportCmd writes a binding to a file.
type BindingExportCmd struct {
	ID   string `arg:"" help:"Binding ID"`
	Path string `arg:"" help:"Output file; the extension selects the format" type:"path"`
}

func (c *BindingExportCmd) Run(g *Globals) error {
	ctx := context.Background()
	format, err := archive.DetectFormat(c.Path)
	if err != nil {
		return err
	}
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.Binding(ctx, c.ID)
	if err != nil {
		return err
	}

	if !format.IsBundle() {
		if err := archive.WriteBindingFile(c.Path, b); err != nil {
			return err
		}
		return printf(g.out, "exported binding %s to %s\n", b.ID, c.Path)
	}

	sources, err := s.Paragraphs(ctx, b.SourceBook)
	if err != nil {
		return err
	}
	targets, err := s.Paragraphs(ctx, b.TargetBook)
	if err != nil {
		return err
	}
	if err := archive.WriteBundle(c.Path, archive.NewBundle(b, sources, targets)); err != nil {
		return err
	}
	return printf(g.out, "exported bundle %s to %s\n", b.ID, c.Path)
}

// BindingImportCmd reads a binding file or bundle into the database. Books
// in a bundle replace stored books of the same ID.
type BindingImportCmd struct {
	Path string `arg:"" help:"Binding file or bundle" type:"existingfile"`
}

func (c *BindingImportCmd) Run(g *Globals) error {
	ctx := context.Background()
	format, err := archive.DetectFormat(c.Path)
	if err != nil {
		return err
	}

	var b *binding.Binding
	var bun *archive.Bundle
	if format.IsBundle() {
		if bun, err = archive.ReadBundle(c.Path); err != nil {
			return err
		}
		b = bun.Binding
	} else if b, err = archive.ReadBindingFile(c.Path); err != nil {
		return err
	}

	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if bun != nil {
		if err := s.PutParagraphs(ctx, b.SourceBook, bun.Sources); err != nil {
			return err
		}
		if err := s.PutParagraphs(ctx, b.TargetBook, bun.Targets); err != nil {
			return err
		}
	}
	if err := s.SaveBinding(ctx, b); err != nil {
		return errors.Wrapf(err, "import %s", c.Path)
	}
	return printf(g.out, "imported binding %s: %d pairs\n", b.ID, len(b.Pairs))
}

// BindingDeleteCmd removes a stored binding.
type BindingDeleteCmd struct {
	ID string `arg:"" help:"Binding ID"`
}

func (c *BindingDeleteCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteBinding(ctx, c.ID); err != nil {
		return err
	}
	return printf(g.out, "deleted binding %s\n", c.ID)
}
