// Package flow drives the guided multi-step input flows: add income, add
// expense, create reminder. Each user has at most one active flow; every
// inbound message is validated against the current step and either advances
// the flow, is rejected with a retry prompt, or cancels back to the menu.
package flow

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/myplan/myplan-bot/internal/model"
	"github.com/myplan/myplan-bot/internal/session"
)

// Recorder is the persistence boundary of the engine. Implementations must
// treat duplicate inserts as success (insert or ignore).
type Recorder interface {
	EnsureUser(ctx context.Context, telegramID int64) error
	AddIncome(ctx context.Context, income model.Income) error
	AddExpense(ctx context.Context, expense model.Expense) error
	AddReminder(ctx context.Context, reminder model.Reminder) error
}

// Engine owns the per-user session table and the step tables for the three
// flows.
//
// All public methods serialize themselves per user through the session
// store, so overlapping events for one user (a button tap racing a text
// message) are applied one at a time.
type Engine struct {
	sessions        session.Store
	recorder        Recorder
	schedule        ScheduleCollector
	defaultCurrency string
	log             *logrus.Logger
}

func NewEngine(sessions session.Store, recorder Recorder, schedule ScheduleCollector, defaultCurrency string, log *logrus.Logger) *Engine {
	return &Engine{
		sessions:        sessions,
		recorder:        recorder,
		schedule:        schedule,
		defaultCurrency: defaultCurrency,
		log:             log,
	}
}

// StartFlow resets the user's session to the first step of kind. Starting a
// flow while another is active silently overwrites it: last start wins. The
// user row is created on first contact.
func (e *Engine) StartFlow(ctx context.Context, userID int64, kind session.FlowKind) Reply {
	var reply Reply
	e.sessions.Do(userID, func() {
		if err := e.recorder.EnsureUser(ctx, userID); err != nil {
			e.log.WithField("userId", userID).WithError(err).Error("error ensuring user")
			reply = replyFailure
			return
		}
		def, ok := flows[kind]
		if !ok {
			reply = replyCancelled
			return
		}
		e.sessions.Put(userID, session.New(kind))
		reply = def.steps[0].prompt(e)
	})
	return reply
}

// SubmitInput feeds one inbound message into the user's active flow. The
// second result is false when the user has no active flow, in which case the
// input was not consumed and the caller should fall back to its default
// handling.
//
// A cancel keyword is honored before any step validation. Invalid input
// never changes the session: the same step just re-prompts until the user
// gets it right or cancels. The final step commits exactly one record and
// resets the session; if the store is unavailable the session stays where it
// was so the same input can be retried.
func (e *Engine) SubmitInput(ctx context.Context, userID int64, raw string) (Reply, bool) {
	var reply Reply
	handled := true
	e.sessions.Do(userID, func() {
		s, ok := e.sessions.Get(userID)
		if !ok || s.Idle() {
			handled = false
			return
		}
		if isCancel(raw) {
			e.sessions.Clear(userID)
			reply = replyCancelled
			return
		}

		def := flows[s.Flow]
		res := def.steps[s.Step].accept(e, s.Fields, strings.TrimSpace(raw))
		if !res.ok || !res.advance {
			reply = res.reply
			return
		}

		if s.Step+1 < len(def.steps) {
			s.Step++
			reply = def.steps[s.Step].prompt(e)
			return
		}

		if err := def.commit(ctx, e, userID, s.Fields); err != nil {
			e.log.WithField("userId", userID).WithField("flow", s.Flow.String()).
				WithError(err).Error("error committing flow")
			reply = replyFailure
			return
		}
		e.sessions.Clear(userID)
		reply = def.confirm(e, s.Fields)
	})
	return reply, handled
}

// Cancel drops the user's active flow, if any, without persisting anything.
// Cancelling from idle is a no-op.
func (e *Engine) Cancel(userID int64) Reply {
	e.sessions.Do(userID, func() {
		if s, ok := e.sessions.Get(userID); ok && !s.Idle() {
			e.sessions.Clear(userID)
		}
	})
	return replyCancelled
}

// Active reports whether the user is inside a flow.
func (e *Engine) Active(userID int64) bool {
	var active bool
	e.sessions.Do(userID, func() {
		s, ok := e.sessions.Get(userID)
		active = ok && !s.Idle()
	})
	return active
}

func isCancel(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "/cancel", "главное меню":
		return true
	}
	return false
}

func (e *Engine) newIncome(userID int64, fields map[string]string) (model.Income, error) {
	amount, err := decimal.NewFromString(fields["amount"])
	if err != nil {
		return model.Income{}, err
	}
	return model.Income{
		TelegramID: userID,
		Amount:     amount,
		Currency:   e.defaultCurrency,
		Category:   fields["category"],
		CreatedAt:  time.Now(),
	}, nil
}

func (e *Engine) newExpense(userID int64, fields map[string]string) (model.Expense, error) {
	amount, err := decimal.NewFromString(fields["amount"])
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		TelegramID: userID,
		Amount:     amount,
		Currency:   fields["currency"],
		Category:   fields["category"],
		CreatedAt:  time.Now(),
	}, nil
}
