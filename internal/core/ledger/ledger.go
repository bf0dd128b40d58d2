package ledger

import (
	"time"

	"github.com/google/uuid"

	"hourglass/internal/core/model"
)

// Ledger is the append-only history of completed intervals.
// It is not safe for concurrent use; the owner serializes access.
type Ledger struct {
	records   []model.SessionRecord
	workCount int
}

// New creates a ledger seeded with previously stored records, in completion order.
func New(records ...model.SessionRecord) *Ledger {
	ledger := &Ledger{
		records: make([]model.SessionRecord, 0, len(records)),
	}
	for _, record := range records {
		ledger.push(record)
	}
	return ledger
}

// Append records a completed interval of kind and returns the stored record.
func (ledger *Ledger) Append(kind model.Mode, plannedSeconds int, completedAt time.Time) model.SessionRecord {
	record := model.SessionRecord{
		ID:             uuid.NewString(),
		Kind:           kind,
		PlannedSeconds: plannedSeconds,
		CompletedAt:    completedAt.UTC(),
	}
	ledger.push(record)
	return record
}

// WorkCount returns the number of completed work intervals.
func (ledger *Ledger) WorkCount() int {
	return ledger.workCount
}

// LongBreakDue reports whether a break starting now should be a long one.
func (ledger *Ledger) LongBreakDue() bool {
	return ledger.workCount > 0 && ledger.workCount%model.LongBreakEvery == 0
}

// Len returns the number of records.
func (ledger *Ledger) Len() int {
	return len(ledger.records)
}

// Records returns a copy of the history.
func (ledger *Ledger) Records() []model.SessionRecord {
	return append([]model.SessionRecord(nil), ledger.records...)
}

// Clear drops every record.
func (ledger *Ledger) Clear() {
	ledger.records = ledger.records[:0]
	ledger.workCount = 0
}

func (ledger *Ledger) push(record model.SessionRecord) {
	ledger.records = append(ledger.records, record)
	if record.Kind == model.ModeWork {
		ledger.workCount++
	}
}
