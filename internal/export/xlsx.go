package export

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "BP Diary"

func renderXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := writeRow(f, i+2, r); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "D", "D", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
