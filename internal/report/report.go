// Package report turns a user's committed incomes and expenses into a
// document attachment (Excel or PDF) plus the short text summary sent with
// it. The bot depends only on the Exporter contract; the layout inside the
// document is each exporter's own business.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/myplan/myplan-bot/internal/model"
)

// File is a generated document blob ready to be sent as a chat attachment.
type File struct {
	Name string
	Data []byte
}

type Exporter interface {
	Generate(userID int64, incomes []model.Income, expenses []model.Expense) (File, error)
}

// NewExporter picks the deployment's exporter. format has already been
// validated by config.
func NewExporter(format string) Exporter {
	if format == "pdf" {
		return NewPDFExporter()
	}
	return NewExcelExporter()
}

const monthLayout = "2006-01"

type entry struct {
	amount decimal.Decimal
	at     time.Time
}

func incomeEntries(incomes []model.Income) []entry {
	out := make([]entry, 0, len(incomes))
	for _, i := range incomes {
		out = append(out, entry{amount: i.Amount, at: i.CreatedAt})
	}
	return out
}

func expenseEntries(expenses []model.Expense) []entry {
	out := make([]entry, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, entry{amount: e.Amount, at: e.CreatedAt})
	}
	return out
}

func byMonth(entries []entry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		key := e.at.Format(monthLayout)
		totals[key] = totals[key].Add(e.amount)
	}
	return totals
}

func total(entries []entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.amount)
	}
	return sum
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Summary builds the text report sent alongside the document: current
// balance and income/expense totals by month.
func Summary(incomes []model.Income, expenses []model.Expense) string {
	in := incomeEntries(incomes)
	out := expenseEntries(expenses)
	balance := total(in).Sub(total(out))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Ваш текущий баланс: *%s*\n", balance.StringFixed(2)))

	b.WriteString("\n*Доходы по месяцам:*\n")
	incomeMonths := byMonth(in)
	for _, m := range sortedKeys(incomeMonths) {
		b.WriteString(fmt.Sprintf("%s: %s\n", m, incomeMonths[m].StringFixed(2)))
	}

	b.WriteString("\n*Расходы по месяцам:*\n")
	expenseMonths := byMonth(out)
	for _, m := range sortedKeys(expenseMonths) {
		b.WriteString(fmt.Sprintf("%s: %s\n", m, expenseMonths[m].StringFixed(2)))
	}

	return b.String()
}

// monthlyRow is one line of the per-month overview sheet.
type monthlyRow struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

func monthlyRows(incomes []model.Income, expenses []model.Expense) []monthlyRow {
	incomeMonths := byMonth(incomeEntries(incomes))
	expenseMonths := byMonth(expenseEntries(expenses))

	months := make(map[string]struct{})
	for m := range incomeMonths {
		months[m] = struct{}{}
	}
	for m := range expenseMonths {
		months[m] = struct{}{}
	}

	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys)

	rows := make([]monthlyRow, 0, len(keys))
	for _, m := range keys {
		in := incomeMonths[m]
		out := expenseMonths[m]
		rows = append(rows, monthlyRow{Month: m, Income: in, Expense: out, Balance: in.Sub(out)})
	}
	return rows
}
