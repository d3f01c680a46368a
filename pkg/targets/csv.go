package targets

import (
	"encoding/csv"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/baiguangmei/tablebench/pkg/bench"
)

// GotaCSV reads a CSV file into a gota DataFrame and reports the frame's
// dimensions. The first row becomes the column names, so the reported row
// count excludes it.
func GotaCSV(path string) bench.ReadFunc {
	return func() (bench.Shape, error) {
		f, err := os.Open(path)
		if err != nil {
			return bench.Shape{}, err
		}
		defer func() { _ = f.Close() }()

		df := dataframe.ReadCSV(f)
		if df.Error() != nil {
			return bench.Shape{}, df.Error()
		}
		nrows, ncols := df.Dims()
		return bench.Shape{Rows: nrows, Cols: ncols}, nil
	}
}

// StdCSV reads a CSV file into memory with encoding/csv and reports the raw
// record count, header included. It is the floor the library targets are
// compared against.
func StdCSV(path string) bench.ReadFunc {
	return func() (bench.Shape, error) {
		f, err := os.Open(path)
		if err != nil {
			return bench.Shape{}, err
		}
		defer func() { _ = f.Close() }()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1 // tolerate ragged rows, like the other readers
		records, err := r.ReadAll()
		if err != nil {
			return bench.Shape{}, err
		}
		shape := bench.Shape{Rows: len(records)}
		for _, rec := range records {
			if len(rec) > shape.Cols {
				shape.Cols = len(rec)
			}
		}
		return shape, nil
	}
}
