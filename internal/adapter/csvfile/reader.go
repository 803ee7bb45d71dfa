// Package csvfile reads snapshot tables from CSV files on disk.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/source"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile is returned for a file with no header row.
var ErrEmptyFile = errors.New("csv file has no header")

// Reader fetches CSV tables by file name from a directory.
// It implements loader.Fetcher.
type Reader struct {
	fsys fs.FS
}

// New returns a Reader rooted at dir.
func New(dir string) *Reader {
	return &Reader{fsys: os.DirFS(dir)}
}

// NewFS returns a Reader over an arbitrary file system, typically an
// fstest.MapFS in tests.
func NewFS(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys}
}

// Fetch reads the named file and returns its rows keyed by header.
func (r *Reader) Fetch(ctx context.Context, name string) ([]source.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := r.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rows, nil
}

// Header returns the header row of the named file.
func (r *Reader) Header(name string) ([]string, error) {
	f, err := r.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	cr := newCSVReader(f)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}
	return trimHeader(header), nil
}

// ReadRows parses CSV from rd. The first record is the header. Short records
// leave the missing columns empty and extra fields are ignored.
func ReadRows(rd io.Reader) ([]source.Row, error) {
	cr := newCSVReader(rd)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}
	header = trimHeader(header)

	var rows []source.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(source.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func newCSVReader(rd io.Reader) *csv.Reader {
	cr := csv.NewReader(&bomStripper{r: rd})
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// bomStripper drops a leading UTF-8 byte order mark.
type bomStripper struct {
	r       io.Reader
	checked bool
	pending []byte
}

func (b *bomStripper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, len(bom))
		n, err := io.ReadFull(b.r, head)
		head = head[:n]
		if !bytes.Equal(head, bom) {
			b.pending = head
		}
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return 0, err
		}
	}
	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}
	return b.r.Read(p)
}
