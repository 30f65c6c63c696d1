package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/binding"
)

// BundleVersion is the manifest version written by WriteBundle.
const BundleVersion = "1"

// Entry names inside a bundle directory.
const (
	manifestEntry = "manifest.json"
	bindingEntry  = "binding.json"
	sourceEntry   = "source.json"
	targetEntry   = "target.json"
)

// Manifest describes a bundle.
type Manifest struct {
	Version     string    `json:"version"`
	BindingID   string    `json:"binding_id"`
	SourceBook  string    `json:"source_book"`
	TargetBook  string    `json:"target_book"`
	Created     time.Time `json:"created"`
	Fingerprint string    `json:"fingerprint"`
	Paragraphs  [2]int    `json:"paragraphs"`
}

// Bundle is a binding with the paragraphs of both of its books.
type Bundle struct {
	Manifest Manifest
	Binding  *binding.Binding
	Sources  []*para.Paragraph
	Targets  []*para.Paragraph
}

// NewBundle assembles a bundle and fills in its manifest.
func NewBundle(b *binding.Binding, sources, targets []*para.Paragraph) *Bundle {
	return &Bundle{
		Manifest: Manifest{
			Version:     BundleVersion,
			BindingID:   b.ID,
			SourceBook:  b.SourceBook,
			TargetBook:  b.TargetBook,
			Created:     b.Created,
			Fingerprint: b.Fingerprint,
			Paragraphs:  [2]int{len(sources), len(targets)},
		},
		Binding: b,
		Sources: sources,
		Targets: targets,
	}
}

// WriteBundle writes bun to path as .tar.xz or .tar.gz. Entries are placed
// under a directory named after the binding ID and carry the binding's
// creation time, so equal bundles produce equal archives.
func WriteBundle(dst string, bun *Bundle) (err error) {
	format, err := DetectFormat(dst)
	if err != nil {
		return err
	}
	if !format.IsBundle() {
		return errors.NewUnsupported("bundle format", string(format))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.NewIO("create directory", filepath.Dir(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.NewIO("close", dst, cerr)
		}
	}()

	var compressor io.WriteCloser
	switch format {
	case FormatTarXZ:
		if compressor, err = xz.NewWriter(out); err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
	case FormatTarGZ:
		compressor = gzip.NewWriter(out)
	}

	tw := tar.NewWriter(compressor)
	dir := bun.Manifest.BindingID
	entries := []struct {
		name  string
		value any
	}{
		{manifestEntry, bun.Manifest},
		{bindingEntry, bun.Binding},
		{sourceEntry, bun.Sources},
		{targetEntry, bun.Targets},
	}
	for _, e := range entries {
		if err := writeJSONEntry(tw, path.Join(dir, e.name), bun.Manifest.Created, e.value); err != nil {
			tw.Close()
			compressor.Close()
			return err
		}
	}

	if err := tw.Close(); err != nil {
		compressor.Close()
		return fmt.Errorf("finish tar: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return fmt.Errorf("finish compression: %w", err)
	}
	return nil
}

func writeJSONEntry(tw *tar.Writer, name string, modTime time.Time, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	header := &tar.Header{
		Name:     name,
		Mode:     0644,
		Size:     int64(len(data)),
		ModTime:  modTime,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatPAX,
	}
	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write header %s: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ReadBundle reads a bundle written by WriteBundle. The binding fingerprint
// is checked and every paired paragraph must be present in the bundle.
func ReadBundle(src string) (*Bundle, error) {
	r, err := NewReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bun := &Bundle{}
	seen := make(map[string]bool)
	err = r.Iterate(func(h *tar.Header, content io.Reader) (bool, error) {
		name := path.Base(h.Name)
		var target any
		switch name {
		case manifestEntry:
			target = &bun.Manifest
		case bindingEntry:
			target = &bun.Binding
		case sourceEntry:
			target = &bun.Sources
		case targetEntry:
			target = &bun.Targets
		default:
			return false, nil
		}
		data, err := io.ReadAll(content)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", h.Name, err)
		}
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(target); err != nil {
			return false, &errors.ParseError{Format: "bundle", Field: name, Message: "invalid JSON", Err: err}
		}
		seen[name] = true
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range []string{manifestEntry, bindingEntry, sourceEntry, targetEntry} {
		if !seen[name] {
			return nil, errors.NewParse("bundle", name, "entry missing")
		}
	}
	if err := bun.Binding.Verify(); err != nil {
		return nil, err
	}
	if err := bun.check(); err != nil {
		return nil, err
	}
	return bun, nil
}

// check verifies that every pair refers to paragraphs in the bundle.
func (bun *Bundle) check() error {
	ids := func(ps []*para.Paragraph) map[string]bool {
		m := make(map[string]bool, len(ps))
		for _, p := range ps {
			m[p.ID] = true
		}
		return m
	}
	sources, targets := ids(bun.Sources), ids(bun.Targets)
	for i, p := range bun.Binding.Pairs {
		if !sources[p.SourceID] || !targets[p.TargetID] {
			return errors.NewValidation("pairs",
				fmt.Sprintf("pair %d (%s, %s) refers to a paragraph outside the bundle", i, p.SourceID, p.TargetID))
		}
	}
	if bun.Manifest.BindingID != bun.Binding.ID {
		return errors.NewValidation("manifest",
			fmt.Sprintf("binding ID %s does not match %s", bun.Manifest.BindingID, bun.Binding.ID))
	}
	return nil
}
