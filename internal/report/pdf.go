package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// PDFStatement renders a one-month account statement: totals on top, the
// month's transactions below, dated ascending like the printable report.
func PDFStatement(transactions []core.Transaction, month core.MonthKey) (Export, error) {
	scoped := make([]core.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.InMonth(month) {
			scoped = append(scoped, t)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool { return scoped[i].Date < scoped[j].Date })
	totals := core.MonthlyTotals(scoped, month)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("CashFlow Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("CashFlow Statement %s", month.Label())), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	summaryRow := func(label string, amount core.Money) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 7, tr(label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, 7, amount.String(), "1", 1, "R", false, 0, "")
	}
	summaryRow("Total Income", totals.Income)
	summaryRow("Total Expense", totals.Expense)
	summaryRow("Net Balance", totals.Balance)
	pdf.Ln(6)

	widths := []float64{24, 20, 38, 24, 32, 52}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range csvHeader {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range RowsFromTransactions(scoped) {
		cells := []string{r.Date, r.Kind, r.Category, r.Amount.String(), r.Method, r.Note}
		for i, c := range cells {
			align := "L"
			if i == 3 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Export{}, fmt.Errorf("render pdf: %w", err)
	}
	return Export{
		Filename: Filename("CashFlow_Statement", "pdf"),
		MIME:     "application/pdf",
		Content:  buf.Bytes(),
	}, nil
}
