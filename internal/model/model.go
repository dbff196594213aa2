package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID         int64
	TelegramID int64
	CreatedAt  time.Time
}

// Income is a committed income record. Rows are append-only: once written
// they are never updated by the bot.
type Income struct {
	ID         int64
	TelegramID int64
	Amount     decimal.Decimal
	Currency   string
	Category   string
	CreatedAt  time.Time
}

// Expense mirrors Income; the two live in separate tables.
type Expense struct {
	ID         int64
	TelegramID int64
	Amount     decimal.Decimal
	Currency   string
	Category   string
	CreatedAt  time.Time
}

type Reminder struct {
	ID         int64
	TelegramID int64
	Text       string
	RemindAt   time.Time
	Sent       bool
}
