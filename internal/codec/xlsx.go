package codec

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

// SheetName is the worksheet written by XLSX.
const SheetName = "Prices"

// XLSX stores a series as a single worksheet with a Date, Price header row.
type XLSX struct{}

func (XLSX) Extension() string { return ".xlsx" }

func (XLSX) Encode(w io.Writer, points []models.PricePoint) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{"Date", "Price"}); err != nil {
		return err
	}
	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{formatDate(p.Date), p.Price}); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// Decode reads the first worksheet. The header row is skipped and blank rows
// are ignored.
func (XLSX) Decode(r io.Reader) ([]models.PricePoint, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Raw values keep every float digit instead of the display format.
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	out := make([]models.PricePoint, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 columns, got %d", i+1, len(row))
		}
		d, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		p, err := parsePrice(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, models.PricePoint{Date: d, Price: p})
	}
	return out, nil
}
