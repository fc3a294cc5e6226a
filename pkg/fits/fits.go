// Package fits opens multi-extension FITS files and exposes the structure
// of their extensions (header cards, table columns, row counts) in a form
// the IRF readers can validate. Decoding of the binary layout is delegated
// to github.com/astrogo/fitsio.
package fits

import (
	"os"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/gammasky/dl3kit/pkg/errors"
)

// File is an opened FITS file.
type File struct {
	path string
	osf  *os.File
	fits *fitsio.File
}

// Open opens the FITS file at path and decodes its HDUs.
func Open(path string) (*File, error) {
	osf, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}

	f, err := fitsio.Open(osf)
	if err != nil {
		_ = osf.Close()
		return nil, errors.NewParseError("fits", path, "cannot decode file", err)
	}

	return &File{path: path, osf: osf, fits: f}, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Close releases the decoder and the underlying file.
func (f *File) Close() error {
	err := f.fits.Close()
	if cerr := f.osf.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return errors.WrapIO("close", f.path, err)
}

// Names returns the extension names in file order. The primary HDU is
// reported under its EXTNAME, or "PRIMARY" when it has none.
func (f *File) Names() []string {
	hdus := f.fits.HDUs()
	names := make([]string, 0, len(hdus))
	for i, hdu := range hdus {
		name := hdu.Name()
		if name == "" && i == 0 {
			name = "PRIMARY"
		}
		names = append(names, name)
	}
	return names
}

// HDU returns the extension called name. Names compare case-insensitively
// with surrounding blanks ignored, as EXTNAME values are padded on disk.
func (f *File) HDU(name string) (*HDU, error) {
	want := normalizeName(name)
	for _, hdu := range f.fits.HDUs() {
		if normalizeName(hdu.Name()) != want {
			continue
		}
		return newHDU(hdu), nil
	}
	return nil, errors.NewNotFoundError("hdu", name)
}

// ReadHDU opens path, extracts the extension called name and closes the file.
func ReadHDU(path, name string) (*HDU, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only access

	return f.HDU(name)
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
