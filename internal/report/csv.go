package report

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/pergazuz/thai-map/internal/model"
)

// WriteDetailCSV writes the per-point detail report to w.
func WriteDetailCSV(w io.Writer, st model.State) error {
	return writeCSV(w, DetailColumns, DetailRows(st))
}

// WriteSummaryCSV writes the per-hub summary report to w.
func WriteSummaryCSV(w io.Writer, st model.State) error {
	return writeCSV(w, SummaryColumns, SummaryRows(st))
}

// ExportDetailCSV writes the detail report to a file at path.
func ExportDetailCSV(st model.State, path string) error {
	return exportCSV(path, DetailColumns, DetailRows(st))
}

// ExportSummaryCSV writes the summary report to a file at path.
func ExportSummaryCSV(st model.State, path string) error {
	return exportCSV(path, SummaryColumns, SummaryRows(st))
}

func exportCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "report: create csv file")
	}
	defer f.Close()

	return writeCSV(f, header, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}
