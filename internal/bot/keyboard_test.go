package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func TestMainMenuMarkup(t *testing.T) {
	menu := mainMenuMarkup()

	assert.True(t, menu.ResizeKeyboard)
	require.Len(t, menu.ReplyKeyboard, 5)
	assert.Equal(t, btnAddIncome, menu.ReplyKeyboard[0][0].Text)
	assert.Equal(t, btnAddExpense, menu.ReplyKeyboard[0][1].Text)
	assert.Equal(t, btnMainMenu, menu.ReplyKeyboard[4][0].Text)
}

func TestOptionsMarkupShortListOnePerRow(t *testing.T) {
	m := optionsMarkup(&telebot.ReplyMarkup{}, []string{"TJS", "USD", "EUR", "RUB"})

	require.Len(t, m.ReplyKeyboard, 5)
	for i, want := range []string{"TJS", "USD", "EUR", "RUB"} {
		require.Len(t, m.ReplyKeyboard[i], 1)
		assert.Equal(t, want, m.ReplyKeyboard[i][0].Text)
	}
	assert.Equal(t, btnMainMenu, m.ReplyKeyboard[4][0].Text)
}

func TestOptionsMarkupLongListChunked(t *testing.T) {
	hours := make([]string, 24)
	for i := range hours {
		hours[i] = "h"
	}

	m := optionsMarkup(&telebot.ReplyMarkup{}, hours)

	// 24 options in rows of 4, plus the menu escape row.
	require.Len(t, m.ReplyKeyboard, 7)
	assert.Len(t, m.ReplyKeyboard[0], 4)
	assert.Equal(t, btnMainMenu, m.ReplyKeyboard[6][0].Text)
}
