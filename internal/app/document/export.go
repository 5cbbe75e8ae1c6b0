package document

import (
	"fmt"

	"tradesupport/internal/app/repository"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{"Date", "Serial Number", "State", "Store", "Value"}

// RenderExport выгрузка строк заявок в xlsx, одна строка на строку заявки
func RenderExport(rows []repository.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Support Requests"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	dateFormat := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return nil, fmt.Errorf("date style: %w", err)
	}
	valueFormat := "#,##0.00"
	valueStyle, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &valueFormat,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("value style: %w", err)
	}

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		r := i + 2
		value, _ := row.UsedValue.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Date)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), dateStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), fmt.Sprintf("SR%05d", row.SerialNumber))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.State.String())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.StoreName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), value)
		f.SetCellStyle(sheet, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), valueStyle)
	}

	f.SetColWidth(sheet, "A", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
