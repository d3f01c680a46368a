package targets

import (
	"errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/baiguangmei/tablebench/pkg/bench"
)

// Excelize reads the first sheet of a workbook with excelize and reports the
// sheet's shape. Column count is the widest row, since GetRows trims trailing
// empty cells per row.
func Excelize(path string) bench.ReadFunc {
	return func() (bench.Shape, error) {
		rows, err := firstSheetRows(path)
		if err != nil {
			return bench.Shape{}, err
		}
		shape := bench.Shape{Rows: len(rows)}
		for _, row := range rows {
			if len(row) > shape.Cols {
				shape.Cols = len(row)
			}
		}
		return shape, nil
	}
}

// GotaExcel loads the first sheet of a workbook into a gota DataFrame, the
// way a dataframe consumer would, and reports the frame's dimensions. The
// first row becomes the column names, so the reported row count excludes it.
func GotaExcel(path string) bench.ReadFunc {
	return func() (bench.Shape, error) {
		rows, err := firstSheetRows(path)
		if err != nil {
			return bench.Shape{}, err
		}
		if len(rows) == 0 {
			return bench.Shape{}, nil
		}
		df := dataframe.LoadRecords(padRecords(rows))
		if df.Error() != nil {
			return bench.Shape{}, df.Error()
		}
		nrows, ncols := df.Dims()
		return bench.Shape{Rows: nrows, Cols: ncols}, nil
	}
}

func firstSheetRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets in workbook")
	}
	return f.GetRows(sheets[0])
}

// padRecords right-pads ragged rows with empty strings so every record is as
// wide as the widest row. gota's LoadRecords requires rectangular input,
// which excelize's trimmed rows do not guarantee.
func padRecords(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == width {
			padded[i] = row
			continue
		}
		p := make([]string, width)
		copy(p, row)
		padded[i] = p
	}
	return padded
}
