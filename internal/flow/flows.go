package flow

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/myplan/myplan-bot/internal/model"
	"github.com/myplan/myplan-bot/internal/session"
)

// amountPattern gates everything the user types as a sum: whole number or up
// to two fractional digits, dot separator.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// stepResult is the outcome of feeding one input to a step. !ok: rejected,
// reply re-prompts, session untouched. ok && !advance: input consumed but
// the step wants more (multi-piece schedule entry), reply asks for the next
// piece. ok && advance: step satisfied, the engine moves on.
type stepResult struct {
	ok      bool
	advance bool
	reply   Reply
}

type stepDef struct {
	prompt func(e *Engine) Reply
	accept func(e *Engine, fields map[string]string, raw string) stepResult
}

type flowDef struct {
	steps   []stepDef
	commit  func(ctx context.Context, e *Engine, userID int64, fields map[string]string) error
	confirm func(e *Engine, fields map[string]string) Reply
}

// flows maps every flow kind to its step table. The tagged table replaces
// the scattered "if text equals" routing the bot grew out of: to add a step
// or a flow, extend the table.
var flows = map[session.FlowKind]flowDef{
	session.FlowAddIncome: {
		steps: []stepDef{
			amountStep(
				"Введите сумму дохода:",
				"Пожалуйста, введите корректную сумму (например, 5000 или 5000.50) или нажмите 'Главное меню' для выхода.",
			),
			choiceStep("category",
				"Выберите категорию:",
				"Пожалуйста, выберите категорию из списка: Зарплата, Фриланс или нажмите 'Главное меню' для выхода.",
				model.IncomeCategories,
			),
		},
		commit: func(ctx context.Context, e *Engine, userID int64, fields map[string]string) error {
			income, err := e.newIncome(userID, fields)
			if err != nil {
				return err
			}
			return e.recorder.AddIncome(ctx, income)
		},
		confirm: func(e *Engine, fields map[string]string) Reply {
			return Reply{Text: fmt.Sprintf("Доход %s %s (%s) добавлен!",
				fields["amount"], e.defaultCurrency, fields["category"])}
		},
	},

	session.FlowAddExpense: {
		steps: []stepDef{
			amountStep(
				"Введите сумму расхода:",
				"Пожалуйста, введите корректную сумму (например, 200 или 150.50)",
			),
			choiceStep("currency",
				"Выберите валюту:",
				"Пожалуйста, выберите валюту из списка: TJS, USD, EUR, RUB",
				model.Currencies,
			),
			choiceStep("category",
				"Выберите категорию:",
				"Пожалуйста, выберите категорию из списка: Еда, Транспорт, Коммуналка",
				model.ExpenseCategories,
			),
		},
		commit: func(ctx context.Context, e *Engine, userID int64, fields map[string]string) error {
			expense, err := e.newExpense(userID, fields)
			if err != nil {
				return err
			}
			return e.recorder.AddExpense(ctx, expense)
		},
		confirm: func(e *Engine, fields map[string]string) Reply {
			return Reply{Text: fmt.Sprintf("Расход %s %s (%s) добавлен!",
				fields["amount"], fields["currency"], fields["category"])}
		},
	},

	session.FlowAddReminder: {
		steps: []stepDef{
			textStep("text", "Введите текст напоминания:"),
			scheduleStep(),
		},
		commit: func(ctx context.Context, e *Engine, userID int64, fields map[string]string) error {
			at, err := time.Parse(ScheduleLayout, fields["remind_at"])
			if err != nil {
				return err
			}
			return e.recorder.AddReminder(ctx, model.Reminder{
				TelegramID: userID,
				Text:       fields["text"],
				RemindAt:   at,
			})
		},
		confirm: func(e *Engine, fields map[string]string) Reply {
			return Reply{Text: fmt.Sprintf("Напоминание добавлено: %s на %s",
				fields["text"], fields["remind_at"])}
		},
	},
}

func amountStep(prompt, retry string) stepDef {
	return stepDef{
		prompt: func(*Engine) Reply { return Reply{Text: prompt} },
		accept: func(_ *Engine, fields map[string]string, raw string) stepResult {
			if !amountPattern.MatchString(raw) {
				return stepResult{reply: Reply{Text: retry}}
			}
			fields["amount"] = raw
			return stepResult{ok: true, advance: true}
		},
	}
}

func choiceStep(field, prompt, retry string, options []string) stepDef {
	return stepDef{
		prompt: func(*Engine) Reply { return Reply{Text: prompt, Options: options} },
		accept: func(_ *Engine, fields map[string]string, raw string) stepResult {
			if !model.Contains(options, raw) {
				return stepResult{reply: Reply{Text: retry, Options: options}}
			}
			fields[field] = raw
			return stepResult{ok: true, advance: true}
		},
	}
}

func textStep(field, prompt string) stepDef {
	return stepDef{
		prompt: func(*Engine) Reply { return Reply{Text: prompt} },
		accept: func(_ *Engine, fields map[string]string, raw string) stepResult {
			if raw == "" {
				return stepResult{reply: Reply{Text: prompt}}
			}
			fields[field] = raw
			return stepResult{ok: true, advance: true}
		},
	}
}

// scheduleStep defers to the engine's ScheduleCollector, which may consume
// one input (strict pattern) or several (date, hour, minute) before it
// produces a timestamp.
func scheduleStep() stepDef {
	return stepDef{
		prompt: func(e *Engine) Reply { return e.schedule.Prompt() },
		accept: func(e *Engine, fields map[string]string, raw string) stepResult {
			res := e.schedule.Collect(fields, raw)
			if !res.OK {
				return stepResult{reply: res.Next}
			}
			if !res.Done {
				return stepResult{ok: true, reply: res.Next}
			}
			fields["remind_at"] = res.At.Format(ScheduleLayout)
			return stepResult{ok: true, advance: true}
		},
	}
}
