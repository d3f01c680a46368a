// Package targets provides the built-in read targets: the excelize and gota
// spreadsheet readers and an encoding/csv baseline. Each target reads one
// fixed input file into an in-memory table and reports the table's shape.
package targets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baiguangmei/tablebench/pkg/bench"
)

// ForInput builds the default registry for the given input file based on its
// extension. Spreadsheet inputs compare the plain excelize read against a
// gota dataframe load; CSV inputs compare gota's CSV reader against the
// encoding/csv baseline.
func ForInput(path string) (*bench.Registry, error) {
	var set []bench.Target
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		set = []bench.Target{
			{Name: "excelize", Read: Excelize(path)},
			{Name: "gota", Read: GotaExcel(path)},
		}
	case ".csv":
		set = []bench.Target{
			{Name: "gota", Read: GotaCSV(path)},
			{Name: "stdcsv", Read: StdCSV(path)},
		}
	default:
		return nil, &bench.InvalidConfigError{
			Reason: fmt.Sprintf("unsupported input type %q (want .xlsx, .xlsm or .csv)", ext),
		}
	}

	reg := bench.NewRegistry()
	for _, t := range set {
		if err := reg.Register(t.Name, t.Read); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
