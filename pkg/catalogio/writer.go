package catalogio

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/seismolab/etas/pkg/types"
)

// Write emits a catalog as a two-column table readable by Reader.
func Write(w io.Writer, catalog *types.Catalog) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(timeColumn + " " + magnitudeColumn + "\n"); err != nil {
		return err
	}
	for i := 0; i < catalog.Len(); i++ {
		row := strconv.FormatFloat(catalog.Times[i], 'g', -1, 64) +
			" " +
			strconv.FormatFloat(catalog.Mags[i], 'g', -1, 64) +
			"\n"
		if _, err := bw.WriteString(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a catalog table to path, replacing any existing file.
func WriteFile(path string, catalog *types.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create catalog file")
	}
	if err := Write(f, catalog); err != nil {
		f.Close()
		return errors.Wrapf(err, "write catalog file %s", path)
	}
	return errors.Wrapf(f.Close(), "close catalog file %s", path)
}
