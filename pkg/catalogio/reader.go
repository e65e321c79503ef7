// Package catalogio reads and writes event catalogs as whitespace-delimited
// tables with a named-column header. Only the `t` and `mg` columns are
// consumed; any other column is ignored.
package catalogio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/seismolab/etas/pkg/types"
)

var (
	ErrMissingHeader = errors.New("catalogio: missing header row")
	ErrMissingColumn = errors.New("catalogio: header lacks a required column")
)

const (
	timeColumn      = "t"
	magnitudeColumn = "mg"
)

// Reader decodes a catalog table from an io.Reader.
type Reader struct {
	scanner *bufio.Scanner

	line     int
	timeIdx  int
	magIdx   int
	hasTable bool
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// ReadAll consumes the whole table and returns the catalog in file order. It
// does not sort; time ordering is the producer's contract and is verified by
// the estimator.
func (r *Reader) ReadAll() (*types.Catalog, error) {
	catalog := types.NewCatalog(0)
	for {
		t, mag, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		catalog.Append(t, mag)
	}
	return catalog, nil
}

// Read returns the next event row, parsing the header first if it has not
// been seen yet. io.EOF signals the end of the table.
func (r *Reader) Read() (t, mag float64, err error) {
	if !r.hasTable {
		if err := r.readHeader(); err != nil {
			return 0, 0, err
		}
	}

	fields, err := r.next()
	if err != nil {
		return 0, 0, err
	}
	need := r.timeIdx
	if r.magIdx > need {
		need = r.magIdx
	}
	if len(fields) <= need {
		return 0, 0, errors.Errorf("catalogio: line %d has %d columns, expected at least %d", r.line, len(fields), need+1)
	}

	t, err = strconv.ParseFloat(fields[r.timeIdx], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "catalogio: bad time on line %d", r.line)
	}
	mag, err = strconv.ParseFloat(fields[r.magIdx], 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "catalogio: bad magnitude on line %d", r.line)
	}
	return t, mag, nil
}

func (r *Reader) readHeader() error {
	fields, err := r.next()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return err
	}

	r.timeIdx, r.magIdx = -1, -1
	for i, name := range fields {
		switch name {
		case timeColumn:
			r.timeIdx = i
		case magnitudeColumn:
			r.magIdx = i
		}
	}
	if r.timeIdx < 0 {
		return errors.Wrapf(ErrMissingColumn, "%q", timeColumn)
	}
	if r.magIdx < 0 {
		return errors.Wrapf(ErrMissingColumn, "%q", magnitudeColumn)
	}

	r.hasTable = true
	return nil
}

// next returns the fields of the next non-empty, non-comment line.
func (r *Reader) next() ([]string, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// ReadFile loads a whole catalog file.
func ReadFile(path string) (*types.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file")
	}
	defer f.Close()

	catalog, err := NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", path)
	}
	return catalog, nil
}
