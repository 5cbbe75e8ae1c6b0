package document

import (
	"bytes"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/service"

	"github.com/go-pdf/fpdf"
)

const PDFContentType = "application/pdf"

// CreditNoteFileName имя файла для скачивания
func CreditNoteFileName(note *service.CreditNote) string {
	return fmt.Sprintf("CrNote_SR%05d.pdf", note.Request.SerialNumber)
}

// CreditNoteLines текст кредит-ноты построчно
func CreditNoteLines(note *service.CreditNote) []string {
	storeName := ""
	if note.Request.Store != nil {
		storeName = note.Request.Store.Name
	}
	return []string{
		fmt.Sprintf("Unilever Document Number: SR%05d", note.Request.SerialNumber),
		fmt.Sprintf("Credit Note Number: CN%05d", note.Document.SerialNumber),
		fmt.Sprintf("Store Name: %s", storeName),
		fmt.Sprintf("Date: %s", note.Document.Date.Format("Jan 02, 2006")),
		fmt.Sprintf("This credit note is to confirm a credit amount of %s AED", ds.FormatAmount(note.Request.TotalUsed())),
	}
}

// RenderCreditNote печатная форма в PDF
func RenderCreditNote(note *service.CreditNote) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Credit Note CN%05d", note.Document.SerialNumber), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 12, "Credit Note")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range CreditNoteLines(note) {
		pdf.Cell(0, 8, line)
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render credit note: %w", err)
	}
	return buf.Bytes(), nil
}
