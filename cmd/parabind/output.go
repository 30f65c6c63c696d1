package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/usx"
)

func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadParagraphs reads a paragraph file: USX (.usx, .xml) or a JSON array
// of paragraphs (.json). bookID defaults to the file's book code for USX and
// to the file name for JSON.
func loadParagraphs(path, bookID string) (string, []*para.Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".usx", ".xml":
		book, err := usx.Load(f, bookID)
		if err != nil {
			return "", nil, errors.Wrapf(err, "load %s", path)
		}
		if bookID == "" {
			bookID = book.Code
		}
		return bookID, book.Paragraphs, nil

	case ".json":
		var ps []*para.Paragraph
		if err := json.NewDecoder(f).Decode(&ps); err != nil {
			return "", nil, &errors.ParseError{Format: "paragraph JSON", Message: path, Err: err}
		}
		if bookID == "" {
			bookID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		for _, p := range ps {
			if p.BookID == "" {
				p.BookID = bookID
			}
		}
		para.SortByPosition(ps)
		return bookID, ps, nil

	default:
		return "", nil, errors.NewUnsupported("paragraph file", filepath.Ext(path))
	}
}
