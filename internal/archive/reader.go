package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
)

// Reader reads the entries of a compressed tar bundle.
type Reader struct {
	*tar.Reader
	file *os.File
	gz   *gzip.Reader
}

// NewReader opens the bundle at path. The compression is chosen by
// extension.
func NewReader(path string) (*Reader, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if !format.IsBundle() {
		return nil, errors.NewUnsupported("bundle format", string(format))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	r := &Reader{file: f}
	var src io.Reader
	switch format {
	case FormatTarXZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		src = xr
	case FormatTarGZ:
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		r.gz = gr
		src = gr
	}
	r.Reader = tar.NewReader(src)
	return r, nil
}

// Close releases the file and decompressor.
func (r *Reader) Close() error {
	var gzErr error
	if r.gz != nil {
		gzErr = r.gz.Close()
	}
	if err := r.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// Visitor is called for each entry; returning stop ends the walk.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate calls visit for each regular entry in order.
func (r *Reader) Iterate(visit Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		stop, err := visit(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// Entries lists the regular file names in the bundle at path.
func Entries(path string) ([]string, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	err = r.Iterate(func(h *tar.Header, _ io.Reader) (bool, error) {
		names = append(names, h.Name)
		return false, nil
	})
	return names, err
}
