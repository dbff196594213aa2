package flow

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ScheduleLayout is the wire format for reminder timestamps, shared by both
// collector variants and the reminder confirmation text.
const ScheduleLayout = "2006-01-02 15:04"

const dateLayout = "2006-01-02"

// ScheduleResult is one Collect outcome. !OK: input rejected, Next is the
// retry prompt, fields untouched. OK && !Done: a piece was accepted, Next
// asks for the following one. Done: At holds the validated timestamp.
type ScheduleResult struct {
	OK   bool
	Done bool
	At   time.Time
	Next Reply
}

// ScheduleCollector turns one or more user inputs into a validated reminder
// timestamp. Two interchangeable implementations exist: strict-pattern text
// entry and discrete date/hour/minute selection; deployments pick one via
// SCHEDULE_INPUT.
type ScheduleCollector interface {
	Prompt() Reply
	Collect(fields map[string]string, raw string) ScheduleResult
}

var schedulePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// TextSchedule collects the schedule as a single "YYYY-MM-DD HH:MM" line.
type TextSchedule struct{}

func (TextSchedule) Prompt() Reply {
	return Reply{Text: "Введите дату и время в формате YYYY-MM-DD HH:MM (например, 2025-08-01 10:00):"}
}

func (TextSchedule) Collect(_ map[string]string, raw string) ScheduleResult {
	if !schedulePattern.MatchString(raw) {
		return ScheduleResult{Next: Reply{Text: "Пожалуйста, введите дату и время в формате YYYY-MM-DD HH:MM"}}
	}
	// time.Parse is strict here: 2025-13-99 matches the pattern but is not
	// a calendar date and is rejected.
	at, err := time.Parse(ScheduleLayout, raw)
	if err != nil {
		return ScheduleResult{Next: Reply{Text: "Неверный формат даты. Попробуйте еще раз: YYYY-MM-DD HH:MM"}}
	}
	return ScheduleResult{OK: true, Done: true, At: at}
}

// PickSchedule collects the schedule as three discrete selections: a date
// from the coming week, then an hour, then minutes.
type PickSchedule struct {
	Now func() time.Time
}

func NewPickSchedule() *PickSchedule {
	return &PickSchedule{Now: time.Now}
}

func (p *PickSchedule) Prompt() Reply {
	return Reply{Text: "Выберите дату:", Options: p.dateOptions()}
}

func (p *PickSchedule) Collect(fields map[string]string, raw string) ScheduleResult {
	if _, ok := fields["remind_date"]; !ok {
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return ScheduleResult{Next: Reply{Text: "Выберите дату из списка (формат YYYY-MM-DD):", Options: p.dateOptions()}}
		}
		fields["remind_date"] = raw
		return ScheduleResult{OK: true, Next: Reply{Text: "Выберите час:", Options: hourOptions()}}
	}

	if _, ok := fields["remind_hour"]; !ok {
		h, err := strconv.Atoi(raw)
		if err != nil || h < 0 || h > 23 {
			return ScheduleResult{Next: Reply{Text: "Выберите час от 00 до 23:", Options: hourOptions()}}
		}
		fields["remind_hour"] = fmt.Sprintf("%02d", h)
		return ScheduleResult{OK: true, Next: Reply{Text: "Выберите минуты:", Options: minuteOptions}}
	}

	m, err := strconv.Atoi(raw)
	if err != nil || m < 0 || m > 59 {
		return ScheduleResult{Next: Reply{Text: "Выберите минуты от 00 до 59:", Options: minuteOptions}}
	}
	at, err := time.Parse(ScheduleLayout,
		fmt.Sprintf("%s %s:%02d", fields["remind_date"], fields["remind_hour"], m))
	if err != nil {
		return ScheduleResult{Next: Reply{Text: "Неверная дата, начните заново:", Options: p.dateOptions()}}
	}
	return ScheduleResult{OK: true, Done: true, At: at}
}

func (p *PickSchedule) dateOptions() []string {
	now := p.Now()
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, now.AddDate(0, 0, i).Format(dateLayout))
	}
	return days
}

func hourOptions() []string {
	hours := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		hours = append(hours, fmt.Sprintf("%02d", h))
	}
	return hours
}

var minuteOptions = []string{"00", "15", "30", "45"}
