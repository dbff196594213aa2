package bot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"github.com/myplan/myplan-bot/internal/flow"
	"github.com/myplan/myplan-bot/internal/report"
	"github.com/myplan/myplan-bot/internal/session"
	"github.com/myplan/myplan-bot/internal/storage"
)

type messageHandler struct {
	b               *telebot.Bot
	engine          *flow.Engine
	storageInstance *storage.Storage
	reports         report.Exporter
	log             *logrus.Logger
}

func newMessageHandler(b *telebot.Bot, engine *flow.Engine, storageInstance *storage.Storage, reports report.Exporter, log *logrus.Logger) *messageHandler {
	return &messageHandler{b: b, engine: engine, storageInstance: storageInstance, reports: reports, log: log}
}

// handleOnText routes free text: menu buttons start flows or commands, and
// everything else is offered to the active flow. Text that neither matches
// a button nor belongs to a flow gets the help hint.
func (h *messageHandler) handleOnText(ctx context.Context, m *telebot.Message) error {
	switch m.Text {
	case btnAddIncome:
		return h.startFlow(ctx, m, session.FlowAddIncome)
	case btnAddExpense:
		return h.startFlow(ctx, m, session.FlowAddExpense)
	case btnAddReminder:
		return h.startFlow(ctx, m, session.FlowAddReminder)
	case btnStatistics:
		return h.handleStatistics(ctx, m)
	case btnTips:
		return h.handleTips(m)
	case btnMainMenu:
		return h.handleCancel(m)
	}

	reply, handled := h.engine.SubmitInput(ctx, m.Sender.ID, m.Text)
	if !handled {
		_, err := h.b.Send(m.Sender, "Извините, я не понимаю эту команду. Введите /help для списка команд.", mainMenuMarkup())
		return err
	}
	return h.sendReply(m.Sender, reply)
}

func (h *messageHandler) startFlow(ctx context.Context, m *telebot.Message, kind session.FlowKind) error {
	reply := h.engine.StartFlow(ctx, m.Sender.ID, kind)
	return h.sendReply(m.Sender, reply)
}

func (h *messageHandler) handleStart(ctx context.Context, m *telebot.Message) error {
	h.engine.Cancel(m.Sender.ID)

	if err := h.storageInstance.EnsureUser(ctx, m.Sender.ID); err != nil {
		h.log.WithField("userId", m.Sender.ID).WithError(err).Error("error ensuring user")
		_, sendErr := h.b.Send(m.Sender, "Произошла ошибка, попробуйте ещё раз.")
		if sendErr != nil {
			return fmt.Errorf("%v: %w", err, sendErr)
		}
		return err
	}

	welcomeText := "Добро пожаловать в MyPlan! Управляйте своими финансами удобно и безопасно."
	_, err := h.b.Send(m.Sender, welcomeText, mainMenuMarkup())
	return err
}

func (h *messageHandler) handleHelp(m *telebot.Message) error {
	helpMessage := "Команды бота:\n" +
		"/start - начать работу с ботом\n" +
		"/income - добавить доход\n" +
		"/expense - добавить расход\n" +
		"/reminder - создать напоминание\n" +
		"/cancel - отменить текущее действие\n" +
		"/help - показать эту справку\n" +
		"...\n" +
		"Кнопка 'Статистика' пришлёт отчёт по доходам и расходам."

	_, err := h.b.Send(m.Sender, helpMessage, mainMenuMarkup())
	return err
}

func (h *messageHandler) handleCancel(m *telebot.Message) error {
	reply := h.engine.Cancel(m.Sender.ID)
	return h.sendReply(m.Sender, reply)
}

func (h *messageHandler) handleStatistics(ctx context.Context, m *telebot.Message) error {
	incomes, err := h.storageInstance.IncomesByTelegramID(ctx, m.Sender.ID)
	if err != nil {
		return h.sendStatisticsError(m, err)
	}
	expenses, err := h.storageInstance.ExpensesByTelegramID(ctx, m.Sender.ID)
	if err != nil {
		return h.sendStatisticsError(m, err)
	}

	summary := report.Summary(incomes, expenses)
	if _, err := h.b.Send(m.Sender, summary, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}); err != nil {
		return err
	}

	file, err := h.reports.Generate(m.Sender.ID, incomes, expenses)
	if err != nil {
		return h.sendStatisticsError(m, err)
	}

	doc := &telebot.Document{
		File:     telebot.FromReader(bytes.NewReader(file.Data)),
		FileName: file.Name,
		Caption:  "Скачать полный отчет",
	}
	_, err = h.b.Send(m.Sender, doc)
	return err
}

func (h *messageHandler) sendStatisticsError(m *telebot.Message, err error) error {
	h.log.WithField("userId", m.Sender.ID).WithError(err).Error("error building statistics")
	_, sendErr := h.b.Send(m.Sender, "Ошибка при получении статистики, попробуйте позже.")
	if sendErr != nil {
		return fmt.Errorf("%v: %w", err, sendErr)
	}
	return err
}

func (h *messageHandler) handleTips(m *telebot.Message) error {
	tip := "Совет: Покупайте овощи на базаре вечером — так дешевле!\n\n" +
		"Следите за своими расходами и ставьте финансовые цели."
	_, err := h.b.Send(m.Sender, tip, mainMenuMarkup())
	return err
}

func (h *messageHandler) sendReply(to *telebot.User, r flow.Reply) error {
	if len(r.Options) == 0 {
		_, err := h.b.Send(to, r.Text, mainMenuMarkup())
		return err
	}
	_, err := h.b.Send(to, r.Text, optionsMarkup(&telebot.ReplyMarkup{}, r.Options))
	return err
}
