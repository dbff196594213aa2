package bot

import (
	"gopkg.in/telebot.v3"
)

const (
	btnAddIncome   = "Добавить доход"
	btnAddExpense  = "Добавить расход"
	btnAddReminder = "Создать напоминание"
	btnStatistics  = "Статистика"
	btnTips        = "Советы"
	btnMainMenu    = "Главное меню"
)

func mainMenuMarkup() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnAddIncome), menu.Text(btnAddExpense)),
		menu.Row(menu.Text(btnAddReminder)),
		menu.Row(menu.Text(btnStatistics)),
		menu.Row(menu.Text(btnTips)),
		menu.Row(menu.Text(btnMainMenu)),
	)
	return menu
}

// optionsMarkup renders a flow step's suggested replies as a reply keyboard
// with a main-menu escape row. Short lists get one option per row; long
// lists (the hour picker) are chunked.
func optionsMarkup(m *telebot.ReplyMarkup, options []string) *telebot.ReplyMarkup {
	perRow := 1
	if len(options) > 8 {
		perRow = 4
	}

	var rows []telebot.Row
	var row telebot.Row
	for i, opt := range options {
		row = append(row, m.Text(opt))
		if len(row) == perRow || i == len(options)-1 {
			rows = append(rows, row)
			row = telebot.Row{}
		}
	}
	rows = append(rows, m.Row(m.Text(btnMainMenu)))

	m.ResizeKeyboard = true
	m.Reply(rows...)
	return m
}
