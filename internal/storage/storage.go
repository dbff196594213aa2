package storage

import (
	"context"
	"embed"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/myplan/myplan-bot/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, postgresDSN string) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(postgresDSN)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting")
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, errors.Wrap(err, "error pinging pool")
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies the embedded schema migrations. Safe to run on every
// boot: an already current schema is not an error.
func Migrate(postgresDSN string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "error reading migrations")
	}

	// golang-migrate's pgx/v5 driver registers under its own scheme.
	url := strings.Replace(postgresDSN, "postgres://", "pgx5://", 1)
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return errors.Wrap(err, "error creating migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "error applying migrations")
	}
	return nil
}

// EnsureUser registers the telegram user on first contact. Repeat calls hit
// the unique constraint on telegram_id and are silently ignored.
func (s *Storage) EnsureUser(ctx context.Context, telegramID int64) error {
	query := `INSERT INTO users (telegram_id) VALUES ($1) ON CONFLICT (telegram_id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, telegramID)
	return errors.Wrap(err, "error ensuring user")
}

func (s *Storage) AddIncome(ctx context.Context, income model.Income) error {
	query := `INSERT INTO incomes (user_id, amount, currency, category, created_at)
              VALUES ((SELECT id FROM users WHERE telegram_id = $1), $2, $3, $4, $5)
              ON CONFLICT DO NOTHING`
	_, err := s.pool.Exec(ctx, query,
		income.TelegramID, income.Amount.String(), income.Currency, income.Category, income.CreatedAt)
	return errors.Wrap(err, "error adding income")
}

func (s *Storage) AddExpense(ctx context.Context, expense model.Expense) error {
	query := `INSERT INTO expenses (user_id, amount, currency, category, created_at)
              VALUES ((SELECT id FROM users WHERE telegram_id = $1), $2, $3, $4, $5)
              ON CONFLICT DO NOTHING`
	_, err := s.pool.Exec(ctx, query,
		expense.TelegramID, expense.Amount.String(), expense.Currency, expense.Category, expense.CreatedAt)
	return errors.Wrap(err, "error adding expense")
}

func (s *Storage) AddReminder(ctx context.Context, reminder model.Reminder) error {
	query := `INSERT INTO reminders (user_id, text, remind_at)
              VALUES ((SELECT id FROM users WHERE telegram_id = $1), $2, $3)
              ON CONFLICT DO NOTHING`
	_, err := s.pool.Exec(ctx, query, reminder.TelegramID, reminder.Text, reminder.RemindAt)
	return errors.Wrap(err, "error adding reminder")
}

func (s *Storage) IncomesByTelegramID(ctx context.Context, telegramID int64) ([]model.Income, error) {
	query := `SELECT i.id, i.amount::text, i.currency, i.category, i.created_at
              FROM incomes i
              WHERE i.user_id = (SELECT id FROM users WHERE telegram_id = $1)
              ORDER BY i.created_at`
	rows, err := s.pool.Query(ctx, query, telegramID)
	if err != nil {
		return nil, errors.Wrap(err, "error querying incomes")
	}
	defer rows.Close()

	var incomes []model.Income
	for rows.Next() {
		var (
			i      model.Income
			amount string
		)
		if err := rows.Scan(&i.ID, &amount, &i.Currency, &i.Category, &i.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "error scanning income")
		}
		if i.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, errors.Wrap(err, "error parsing income amount")
		}
		i.TelegramID = telegramID
		incomes = append(incomes, i)
	}

	return incomes, errors.Wrap(rows.Err(), "error reading incomes")
}

func (s *Storage) ExpensesByTelegramID(ctx context.Context, telegramID int64) ([]model.Expense, error) {
	query := `SELECT e.id, e.amount::text, e.currency, e.category, e.created_at
              FROM expenses e
              WHERE e.user_id = (SELECT id FROM users WHERE telegram_id = $1)
              ORDER BY e.created_at`
	rows, err := s.pool.Query(ctx, query, telegramID)
	if err != nil {
		return nil, errors.Wrap(err, "error querying expenses")
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var (
			e      model.Expense
			amount string
		)
		if err := rows.Scan(&e.ID, &amount, &e.Currency, &e.Category, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "error scanning expense")
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, errors.Wrap(err, "error parsing expense amount")
		}
		e.TelegramID = telegramID
		expenses = append(expenses, e)
	}

	return expenses, errors.Wrap(rows.Err(), "error reading expenses")
}

// DueReminders returns unsent reminders whose trigger time has passed,
// joined back to the owning telegram id for delivery.
func (s *Storage) DueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	query := `SELECT r.id, u.telegram_id, r.text, r.remind_at
              FROM reminders r
              JOIN users u ON u.id = r.user_id
              WHERE r.sent = FALSE AND r.remind_at <= $1
              ORDER BY r.remind_at`
	rows, err := s.pool.Query(ctx, query, now)
	if err != nil {
		return nil, errors.Wrap(err, "error querying reminders")
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var r model.Reminder
		if err := rows.Scan(&r.ID, &r.TelegramID, &r.Text, &r.RemindAt); err != nil {
			return nil, errors.Wrap(err, "error scanning reminder")
		}
		reminders = append(reminders, r)
	}

	return reminders, errors.Wrap(rows.Err(), "error reading reminders")
}

func (s *Storage) MarkReminderSent(ctx context.Context, id int64) error {
	query := `UPDATE reminders SET sent = TRUE WHERE id = $1`
	_, err := s.pool.Exec(ctx, query, id)
	return errors.Wrap(err, "error marking reminder sent")
}
