package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/myplan/myplan-bot/internal/model"
)

const (
	summarySheet = "Отчет по месяцам"
	incomeSheet  = "Доходы"
	expenseSheet = "Расходы"
)

// ExcelExporter writes a workbook with a per-month overview sheet and raw
// income/expense sheets.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

func (x *ExcelExporter) Generate(userID int64, incomes []model.Income, expenses []model.Expense) (File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return File{}, errors.Wrap(err, "error renaming sheet")
	}

	headers := []interface{}{"Месяц", "Доход", "Расход", "Баланс"}
	if err := setRow(f, summarySheet, 1, headers); err != nil {
		return File{}, err
	}
	for i, row := range monthlyRows(incomes, expenses) {
		values := []interface{}{row.Month, row.Income.StringFixed(2), row.Expense.StringFixed(2), row.Balance.StringFixed(2)}
		if err := setRow(f, summarySheet, i+2, values); err != nil {
			return File{}, err
		}
	}

	if err := writeIncomeSheet(f, incomes); err != nil {
		return File{}, err
	}
	if err := writeExpenseSheet(f, expenses); err != nil {
		return File{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return File{}, errors.Wrap(err, "error writing workbook")
	}

	// Unique name per export so chat clients never serve a cached file.
	name := fmt.Sprintf("finance_report_%s.xlsx", uuid.NewString()[:8])
	return File{Name: name, Data: buf.Bytes()}, nil
}

func writeIncomeSheet(f *excelize.File, incomes []model.Income) error {
	if _, err := f.NewSheet(incomeSheet); err != nil {
		return errors.Wrap(err, "error creating income sheet")
	}
	if err := setRow(f, incomeSheet, 1, []interface{}{"Сумма", "Валюта", "Категория", "Дата"}); err != nil {
		return err
	}
	for i, in := range incomes {
		values := []interface{}{in.Amount.StringFixed(2), in.Currency, in.Category, in.CreatedAt.Format("2006-01-02 15:04")}
		if err := setRow(f, incomeSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, expenses []model.Expense) error {
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return errors.Wrap(err, "error creating expense sheet")
	}
	if err := setRow(f, expenseSheet, 1, []interface{}{"Сумма", "Валюта", "Категория", "Дата"}); err != nil {
		return err
	}
	for i, e := range expenses {
		values := []interface{}{e.Amount.StringFixed(2), e.Currency, e.Category, e.CreatedAt.Format("2006-01-02 15:04")}
		if err := setRow(f, expenseSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "error building cell name")
	}
	return errors.Wrap(f.SetSheetRow(sheet, cell, &values), "error writing row")
}
