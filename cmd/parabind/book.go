package main

import (
	"context"
	"text/tabwriter"
	"time"
)

// BookGroup contains stored book operations.
type BookGroup struct {
	Import BookImportCmd `cmd:"" help:"Import a paragraph file as a book"`
	List   BookListCmd   `cmd:"" help:"List stored books"`
	Show   BookShowCmd   `cmd:"" help:"Print the paragraphs of a book"`
	Delete BookDeleteCmd `cmd:"" help:"Delete a stored book"`
}

// BookImportCmd imports a USX or JSON paragraph file.
type BookImportCmd struct {
	Path string `arg:"" help:"Paragraph file (.usx, .xml or .json)" type:"existingfile"`
	ID   string `name:"id" help:"Book ID (default: the file's book code or name)"`
}

func (c *BookImportCmd) Run(g *Globals) error {
	ctx := context.Background()
	bookID, ps, err := loadParagraphs(c.Path, c.ID)
	if err != nil {
		return err
	}
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.PutParagraphs(ctx, bookID, ps); err != nil {
		return err
	}
	ranged := 0
	for _, p := range ps {
		if p.HasRange() {
			ranged++
		}
	}
	return printf(g.out, "imported %s: %d paragraphs (%d with verses)\n", bookID, len(ps), ranged)
}

// BookListCmd lists stored books.
type BookListCmd struct {
	JSON bool `help:"Print as JSON"`
}

func (c *BookListCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	books, err := s.Books(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g.out, books)
	}
	tw := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
	printf(tw, "BOOK\tPARAGRAPHS\tWITH VERSES\tIMPORTED\n")
	for _, b := range books {
		printf(tw, "%s\t%d\t%d\t%s\n", b.ID, b.Paragraphs, b.Ranged, b.Imported.Format(time.RFC3339))
	}
	return tw.Flush()
}

// BookShowCmd prints the paragraphs of a stored book.
type BookShowCmd struct {
	ID   string `arg:"" help:"Book ID"`
	JSON bool   `help:"Print as JSON"`
}

func (c *BookShowCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	ps, err := s.Paragraphs(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(g.out, ps)
	}
	for _, p := range ps {
		if err := printf(g.out, "%s\t%s\t%s\n", p, p.Style, p.Text); err != nil {
			return err
		}
	}
	return nil
}

// BookDeleteCmd removes a stored book.
type BookDeleteCmd struct {
	ID string `arg:"" help:"Book ID"`
}

func (c *BookDeleteCmd) Run(g *Globals) error {
	ctx := context.Background()
	s, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteBook(ctx, c.ID); err != nil {
		return err
	}
	return printf(g.out, "deleted %s\n", c.ID)
}
