package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myplan/myplan-bot/internal/model"
)

type fakeStore struct {
	due    []model.Reminder
	marked []int64
}

func (f *fakeStore) DueReminders(_ context.Context, _ time.Time) ([]model.Reminder, error) {
	return f.due, nil
}

func (f *fakeStore) MarkReminderSent(_ context.Context, id int64) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakeSender struct {
	sent     map[int64][]string
	failFor  int64
	failWith error
}

func (f *fakeSender) SendReminder(telegramID int64, text string) error {
	if telegramID == f.failFor && f.failWith != nil {
		return f.failWith
	}
	if f.sent == nil {
		f.sent = make(map[int64][]string)
	}
	f.sent[telegramID] = append(f.sent[telegramID], text)
	return nil
}

func newTestDispatcher(store *fakeStore, sender *fakeSender) *Dispatcher {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	d := NewDispatcher(store, sender, time.Minute, log)
	d.now = func() time.Time { return time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC) }
	return d
}

func TestDispatchDueSendsAndMarks(t *testing.T) {
	store := &fakeStore{due: []model.Reminder{
		{ID: 1, TelegramID: 42, Text: "Buy milk"},
		{ID: 2, TelegramID: 43, Text: "Pay rent"},
	}}
	sender := &fakeSender{}

	newTestDispatcher(store, sender).DispatchDue(context.Background())

	require.Len(t, sender.sent[42], 1)
	assert.Equal(t, "Напоминание: Buy milk", sender.sent[42][0])
	assert.Equal(t, []string{"Напоминание: Pay rent"}, sender.sent[43])
	assert.Equal(t, []int64{1, 2}, store.marked)
}

func TestDispatchDueKeepsUnsentOnFailure(t *testing.T) {
	store := &fakeStore{due: []model.Reminder{
		{ID: 1, TelegramID: 42, Text: "Buy milk"},
		{ID: 2, TelegramID: 43, Text: "Pay rent"},
	}}
	sender := &fakeSender{failFor: 42, failWith: assert.AnError}

	newTestDispatcher(store, sender).DispatchDue(context.Background())

	// The failed one stays unmarked for the next tick; the rest go through.
	assert.Equal(t, []int64{2}, store.marked)
	assert.Empty(t, sender.sent[42])
}

func TestDispatchDueNothingDue(t *testing.T) {
	store := &fakeStore{}
	sender := &fakeSender{}

	newTestDispatcher(store, sender).DispatchDue(context.Background())

	assert.Empty(t, store.marked)
	assert.Empty(t, sender.sent)
}
