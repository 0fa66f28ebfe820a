// Package report renders the transaction collection into downloadable
// documents: a CSV sheet, a Word-compatible file, a printable HTML report
// and a PDF statement. Rendering is pure; every format is built in memory
// and returned as an Export the transport layer can send as-is.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// Export is a rendered document ready to be served or written to disk.
type Export struct {
	Filename string
	MIME     string
	Content  []byte
}

// Row is the flat projection of a transaction used by every export format.
// Empty optional fields are rendered as a placeholder so columns never
// collapse.
type Row struct {
	Date     string
	Kind     string
	Category string
	Amount   core.Money
	Method   string
	Note     string
}

const placeholder = "—"

var csvHeader = []string{"Date", "Type", "Category", "Amount", "Payment Method", "Note"}

// RowsFromTransactions projects transactions into export rows in input
// order.
func RowsFromTransactions(transactions []core.Transaction) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, Row{
			Date:     string(t.Date),
			Kind:     strings.ToUpper(string(t.Kind)),
			Category: t.Category,
			Amount:   t.Amount,
			Method:   orPlaceholder(t.PaymentMethod),
			Note:     orPlaceholder(t.Note),
		})
	}
	return rows
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// Filename builds the export file name: prefix, underscore, the current
// date in ISO form, extension.
func Filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
}

// CSV renders the rows as an RFC 4180 sheet. The header row is always
// present, so an empty collection still produces a well-formed document.
func CSV(transactions []core.Transaction) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return Export{}, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range RowsFromTransactions(transactions) {
		record := []string{r.Date, r.Kind, r.Category, r.Amount.String(), r.Method, r.Note}
		if err := w.Write(record); err != nil {
			return Export{}, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("flush csv: %w", err)
	}

	return Export{
		Filename: Filename("CashFlow_Sheet", "csv"),
		MIME:     "text/csv",
		Content:  buf.Bytes(),
	}, nil
}

// Word renders the rows as an HTML document carrying the Microsoft Office
// namespaces, which Word opens as a native table. All user-entered text is
// HTML-escaped.
func Word(transactions []core.Transaction) Export {
	var b strings.Builder
	b.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">`)
	b.WriteString("<head><meta charset=\"utf-8\"><title>CashFlow Transaction Report</title></head><body>")
	b.WriteString("<h1>CashFlow Transaction Report</h1>")
	fmt.Fprintf(&b, "<p>Generated on %s</p>", time.Now().Format("2006-01-02 15:04"))
	b.WriteString(`<table border="1" cellspacing="0" cellpadding="4"><tr>`)
	for _, h := range csvHeader {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr>")
	for _, r := range RowsFromTransactions(transactions) {
		b.WriteString("<tr>")
		cells := []string{r.Date, r.Kind, r.Category, r.Amount.String(), r.Method, r.Note}
		for _, c := range cells {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(c))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")

	return Export{
		Filename: Filename("CashFlow_Word", "doc"),
		MIME:     "application/msword",
		Content:  []byte(b.String()),
	}
}

// PrintableReport renders a standalone HTML page meant for the browser's
// print dialog: a summary block with the overall income, expense and net
// balance, followed by the full transaction table.
func PrintableReport(transactions []core.Transaction) Export {
	var income, expense int64
	for _, t := range transactions {
		switch t.Kind {
		case core.Income:
			income += t.Amount.Cents
		case core.Expense:
			expense += t.Amount.Cents
		}
	}
	return printable(transactions, "CashFlow Report", core.Money{Cents: income}, core.Money{Cents: expense})
}

/// PrintableMonthReport is the single-month variant: only transactions
// dated inside month appear, sorted by date ascending.
func PrintableMonthReport(transactions []core.Transaction, month core.MonthKey) Export {
	var scoped []core.Transaction
	for _, t := range transactions {
		if t.Date.InMonth(month) {
			scoped = append(scoped, t)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool { return scoped[i].Date < scoped[j].Date })

	totals := core.MonthlyTotals(scoped, month)
	title := fmt.Sprintf("CashFlow Report %s", month.Label())
	return printable(scoped, title, totals.Income, totals.Expense)
}

func printable(transactions []core.Transaction, title string, income, expense core.Money) Export {
	net := core.Money{Cents: income.Cents - expense.Cents}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(title))
	b.WriteString(`<style>
body{font-family:sans-serif;margin:2rem}
.summary{display:flex;gap:1rem;margin-bottom:1.5rem}
.card{border:1px solid #ccc;border-radius:6px;padding:1rem;min-width:10rem}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:.4rem .6rem;text-align:left}
@media print{.card{break-inside:avoid}}
</style></head><body>`)
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(title))
	fmt.Fprintf(&b, "<p>Generated on %s</p>", time.Now().Format("2006-01-02 15:04"))
	b.WriteString(`<div class="summary">`)
	fmt.Fprintf(&b, `<div class="card"><h3>Total Income</h3><p>%s</p></div>`, income)
	fmt.Fprintf(&b, `<div class="card"><h3>Total Expense</h3><p>%s</p></div>`, expense)
	fmt.Fprintf(&b, `<div class="card"><h3>Net Balance</h3><p>%s</p></div>`, net)
	b.WriteString("</div><table><tr>")
	for _, h := range csvHeader {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr>")
	for _, r := range RowsFromTransactions(transactions) {
		b.WriteString("<tr>")
		cells := []string{r.Date, r.Kind, r.Category, r.Amount.String(), r.Method, r.Note}
		for _, c := range cells {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(c))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")

	return Export{
		Filename: Filename("CashFlow_Report", "html"),
		MIME:     "text/html",
		Content:  []byte(b.String()),
	}
}
