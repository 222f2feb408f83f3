package infra

import (
	"fmt"

	"github.com/abhishek972986/porter-managment/internal/dto"

	"github.com/xuri/excelize/v2"
)

const nominalRollSheet = "Nominal Roll"

var nominalRollHeaders = []string{
	"S No", "Account No", "Name of Porter", "Father Name",
	"No of Days", "Per Day Rate", "Total Amount", "Remarks",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// NominalRollXLSX renders the monthly nominal roll workbook: a merged title
// row, a blank row, the header row at row 3 and one row per porter.
func NominalRollXLSX(month string, rows []dto.NominalRollRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", nominalRollSheet); err != nil {
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("excel: title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return nil, fmt.Errorf("excel: cell style: %w", err)
	}

	// ── Title ────────────────────────────────────────────────────────────────
	if err := f.MergeCell(nominalRollSheet, "A1", "H1"); err != nil {
		return nil, fmt.Errorf("excel: merge title: %w", err)
	}
	if err := f.SetCellValue(nominalRollSheet, "A1", "NOMINAL ROLL OF PORTER MONTH OF "+month); err != nil {
		return nil, fmt.Errorf("excel: title: %w", err)
	}
	if err := f.SetCellStyle(nominalRollSheet, "A1", "H1", titleStyle); err != nil {
		return nil, fmt.Errorf("excel: title style: %w", err)
	}

	// ── Header ───────────────────────────────────────────────────────────────
	const headerRow = 3
	for col, h := range nominalRollHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(nominalRollSheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: header %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(nominalRollSheet, "A3", "H3", headerStyle); err != nil {
		return nil, fmt.Errorf("excel: header style: %w", err)
	}

	// ── Rows ─────────────────────────────────────────────────────────────────
	for i, r := range rows {
		row := headerRow + 1 + i
		values := []any{
			i + 1,
			r.AccountNo,
			r.PorterName,
			r.FatherName,
			r.DaysWorked,
			r.PerDayRate.InexactFloat64(),
			r.TotalAmount.InexactFloat64(),
			r.Remarks,
		}
		start, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(nominalRollSheet, start, &values); err != nil {
			return nil, fmt.Errorf("excel: row %d: %w", row, err)
		}
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellStyle(nominalRollSheet, start, end, cellStyle); err != nil {
			return nil, fmt.Errorf("excel: row style %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(nominalRollSheet, "A", "H", 20); err != nil {
		return nil, fmt.Errorf("excel: column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write: %w", err)
	}
	return buf.Bytes(), nil
}
