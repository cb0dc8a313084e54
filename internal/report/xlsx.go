package report

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/pergazuz/thai-map/internal/model"
)

// Sheet names of the XLSX workbook.
const (
	sheetPoints = "Points"
	sheetZones  = "Zones"
)

// ExportXLSX writes both reports into one workbook at path: the detail rows
// on a Points sheet, the summary rows on a Zones sheet.
func ExportXLSX(st model.State, path string) error {
	f := xlsx.NewFile()

	if err := addSheet(f, sheetPoints, DetailColumns, DetailRows(st)); err != nil {
		return err
	}
	if err := addSheet(f, sheetZones, SummaryColumns, SummaryRows(st)); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "report: save xlsx")
	}
	return nil
}

// addSheet appends one sheet holding a header row plus the data rows.
func addSheet(f *xlsx.File, name string, header []string, rows [][]string) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %q", name)
	}

	addRow(sheet, header)
	for _, row := range rows {
		addRow(sheet, row)
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		cell := row.AddCell()
		cell.SetString(v)
	}
}
