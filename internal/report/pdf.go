package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/myplan/myplan-bot/internal/model"
)

// PDFExporter writes income and expense tables grouped by day and category.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (p *PDFExporter) Generate(userID int64, incomes []model.Income, expenses []model.Expense) (File, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	// Core fonts are not unicode; cp1251 covers the Cyrillic text we emit.
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Отчёт по доходам и расходам"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeTable(pdf, tr, "Доходы", incomeRows(incomes), 66, 133, 244)
	pdf.Ln(6)
	writeTable(pdf, tr, "Расходы", expenseRows(expenses), 219, 68, 55)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return File{}, errors.Wrap(err, "error writing pdf")
	}

	name := fmt.Sprintf("finance_report_%s.pdf", uuid.NewString()[:8])
	return File{Name: name, Data: buf.Bytes()}, nil
}

type dayCategoryRow struct {
	Date     string
	Category string
	Amount   decimal.Decimal
}

func incomeRows(incomes []model.Income) []dayCategoryRow {
	entries := make([]dayCategoryEntry, 0, len(incomes))
	for _, i := range incomes {
		entries = append(entries, dayCategoryEntry{at: i.CreatedAt, category: i.Category, amount: i.Amount})
	}
	return groupByDayCategory(entries)
}

func expenseRows(expenses []model.Expense) []dayCategoryRow {
	entries := make([]dayCategoryEntry, 0, len(expenses))
	for _, e := range expenses {
		entries = append(entries, dayCategoryEntry{at: e.CreatedAt, category: e.Category, amount: e.Amount})
	}
	return groupByDayCategory(entries)
}

type dayCategoryEntry struct {
	at       time.Time
	category string
	amount   decimal.Decimal
}

func groupByDayCategory(entries []dayCategoryEntry) []dayCategoryRow {
	type key struct{ date, category string }
	totals := make(map[key]decimal.Decimal)
	for _, e := range entries {
		k := key{date: e.at.Format("2006-01-02"), category: e.category}
		totals[k] = totals[k].Add(e.amount)
	}

	rows := make([]dayCategoryRow, 0, len(totals))
	for k, amount := range totals {
		rows = append(rows, dayCategoryRow{Date: k.date, Category: k.category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, rows []dayCategoryRow, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr("Нет данных"), "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 8, tr("Дата"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 8, tr("Категория"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, tr("Сумма"), "1", 1, "C", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(40, 7, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 7, tr(row.Category), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, row.Amount.StringFixed(2), "1", 1, "C", false, 0, "")
	}
}
