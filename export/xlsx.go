package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/paystub-extraction/dto"
)

const sheetName = "Paystubs"

// WriteXLSX writes the same table as WriteCSV into a workbook. Amounts are
// numeric cells in currency units.
func WriteXLSX(out io.Writer, records []dto.PaystubRecord, opts Options) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	columns := Columns(records, opts)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for r := range records {
		cells := make([]any, len(columns))
		for i, name := range columns {
			v, ok := records[r].Get(name)
			switch {
			case !ok:
				cells[i] = nil
			case v.Kind == dto.KindAmount:
				cells[i] = float64(v.Cents) / 100
			default:
				cells[i] = v.Text
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	_, err := f.WriteTo(out)
	return err
}
