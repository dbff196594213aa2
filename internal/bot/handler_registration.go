package bot

import (
	"context"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"github.com/myplan/myplan-bot/internal/flow"
	"github.com/myplan/myplan-bot/internal/report"
	"github.com/myplan/myplan-bot/internal/session"
	"github.com/myplan/myplan-bot/internal/storage"
)

// RegisterHandlers wires commands and text routing. Handler errors are
// logged here and never bubbled to telebot, so one bad update cannot stop
// the poller.
func RegisterHandlers(b *telebot.Bot, engine *flow.Engine, storageInstance *storage.Storage, reports report.Exporter, log *logrus.Logger) {
	msgHandler := newMessageHandler(b, engine, storageInstance, reports, log)

	b.Handle("/start", func(ctx telebot.Context) error {
		err := msgHandler.handleStart(context.Background(), ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /start")
		}
		return nil
	})

	b.Handle("/help", func(ctx telebot.Context) error {
		err := msgHandler.handleHelp(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /help")
		}
		return nil
	})

	b.Handle("/income", func(ctx telebot.Context) error {
		err := msgHandler.startFlow(context.Background(), ctx.Message(), session.FlowAddIncome)
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /income")
		}
		return nil
	})

	b.Handle("/expense", func(ctx telebot.Context) error {
		err := msgHandler.startFlow(context.Background(), ctx.Message(), session.FlowAddExpense)
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /expense")
		}
		return nil
	})

	b.Handle("/reminder", func(ctx telebot.Context) error {
		err := msgHandler.startFlow(context.Background(), ctx.Message(), session.FlowAddReminder)
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /reminder")
		}
		return nil
	})

	b.Handle("/cancel", func(ctx telebot.Context) error {
		err := msgHandler.handleCancel(ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling /cancel")
		}
		return nil
	})

	b.Handle(telebot.OnText, func(ctx telebot.Context) error {
		err := msgHandler.handleOnText(context.Background(), ctx.Message())
		if err != nil {
			log.WithField("userId", ctx.Message().Sender.ID).WithError(err).Error("error handling text")
		}
		return nil
	})
}

// ReminderSender adapts the bot to the reminder dispatcher's Sender.
type ReminderSender struct {
	b *telebot.Bot
}

func NewReminderSender(b *telebot.Bot) *ReminderSender {
	return &ReminderSender{b: b}
}

func (s *ReminderSender) SendReminder(telegramID int64, text string) error {
	_, err := s.b.Send(&telebot.User{ID: telegramID}, text)
	return err
}
