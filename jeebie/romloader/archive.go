package romloader

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// entry is one member of an archive.
type entry struct {
	name string
	dir  bool
	open func() (io.ReadCloser, error)
}

// nextFunc yields archive members until io.EOF.
type nextFunc func() (entry, error)

// firstROM extracts the first member with a ROM extension.
func firstROM(next nextFunc) (ROM, error) {
	for {
		e, err := next()
		if errors.Is(err, io.EOF) {
			return ROM{}, ErrNoROMFile
		}
		if err != nil {
			return ROM{}, fmt.Errorf("failed to read archive entry: %w", err)
		}
		if e.dir || !IsROMName(e.name) {
			continue
		}

		rc, err := e.open()
		if err != nil {
			return ROM{}, fmt.Errorf("failed to open %s in archive: %w", e.name, err)
		}
		data, err := readLimited(rc)
		rc.Close()
		if err != nil {
			return ROM{}, fmt.Errorf("failed to read %s: %w", e.name, err)
		}
		return ROM{Data: data, Name: filepath.Base(e.name)}, nil
	}
}

func fromZIP(path string) (ROM, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	i := 0
	return firstROM(func() (entry, error) {
		if i >= len(r.File) {
			return entry{}, io.EOF
		}
		f := r.File[i]
		i++
		return entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open}, nil
	})
}

func from7z(path string) (ROM, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	i := 0
	return firstROM(func() (entry, error) {
		if i >= len(r.File) {
			return entry{}, io.EOF
		}
		f := r.File[i]
		i++
		return entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open}, nil
	})
}

func fromRAR(path string) (ROM, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	return firstROM(func() (entry, error) {
		h, err := r.Next()
		if err != nil {
			return entry{}, err
		}
		return entry{name: h.Name, dir: h.IsDir, open: streamOpener(r)}, nil
	})
}

// fromGzip handles both .tar.gz bundles and single gzipped images.
func fromGzip(path string) (ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to open gzip: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		tr := tar.NewReader(gr)
		return firstROM(func() (entry, error) {
			h, err := tr.Next()
			if err != nil {
				return entry{}, err
			}
			return entry{name: h.Name, dir: h.Typeflag != tar.TypeReg, open: streamOpener(tr)}, nil
		})
	}

	data, err := readLimited(gr)
	if err != nil {
		return ROM{}, fmt.Errorf("failed to decompress gzip: %w", err)
	}
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-len(".gz")]
	}
	return ROM{Data: data, Name: name}, nil
}

// streamOpener exposes the current member of a streaming archive.
func streamOpener(r io.Reader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}
}
