package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/binding"
)

// WriteBinding writes b to w as xz-compressed JSON.
func WriteBinding(w io.Writer, b *binding.Binding) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	enc := json.NewEncoder(xw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		xw.Close()
		return fmt.Errorf("encode binding %s: %w", b.ID, err)
	}
	return xw.Close()
}

// ReadBinding reads an xz-compressed JSON binding and checks its
// fingerprint.
func ReadBinding(r io.Reader) (*binding.Binding, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "binding archive", Message: "not xz data", Err: err}
	}
	return decodeBinding(xr)
}

func decodeBinding(r io.Reader) (*binding.Binding, error) {
	var b binding.Binding
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, &errors.ParseError{Format: "binding archive", Message: "invalid JSON", Err: err}
	}
	if err := b.Verify(); err != nil {
		return nil, err
	}
	return &b, nil
}

// WriteBindingFile writes b to path as .json or .json.xz depending on the
// extension. Parent directories are created.
func WriteBindingFile(path string, b *binding.Binding) (err error) {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if f != FormatJSON && f != FormatJSONXZ {
		return errors.NewUnsupported("binding file format", string(f))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewIO("create directory", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.NewIO("close", path, cerr)
		}
	}()

	if f == FormatJSONXZ {
		return WriteBinding(out, b)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ReadBindingFile reads a binding written by WriteBindingFile.
func ReadBindingFile(path string) (*binding.Binding, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer in.Close()

	switch f {
	case FormatJSONXZ:
		return ReadBinding(in)
	case FormatJSON:
		return decodeBinding(in)
	default:
		return nil, errors.NewUnsupported("binding file format", string(f))
	}
}
