// Package session keeps the per-user conversational state: which guided
// flow is active, which step it is on, and the values collected so far.
// State lives in process memory only; a restart drops every in-flight flow
// and the user simply starts over.
package session

// FlowKind names a guided flow. FlowNone means the user is idle.
type FlowKind int

const (
	FlowNone FlowKind = iota
	FlowAddIncome
	FlowAddExpense
	FlowAddReminder
)

func (k FlowKind) String() string {
	switch k {
	case FlowAddIncome:
		return "add_income"
	case FlowAddExpense:
		return "add_expense"
	case FlowAddReminder:
		return "add_reminder"
	default:
		return "none"
	}
}

// Session is one user's in-flight flow. Step indexes into the flow's step
// table; Fields accumulates validated values keyed by field name.
type Session struct {
	Flow   FlowKind
	Step   int
	Fields map[string]string
}

func New(kind FlowKind) *Session {
	return &Session{Flow: kind, Fields: make(map[string]string)}
}

func (s *Session) Idle() bool {
	return s == nil || s.Flow == FlowNone
}

// Store holds sessions by telegram user id.
//
// Sessions are not safe for concurrent use: callers must wrap every read or
// mutation of one user's session in Do for that user. Different users never
// contend.
type Store interface {
	Get(userID int64) (*Session, bool)
	Put(userID int64, s *Session)
	Clear(userID int64)
	// Do runs fn while holding the user's lock, serializing overlapping
	// events for the same user (e.g. a button tap racing a text message).
	Do(userID int64, fn func())
}
