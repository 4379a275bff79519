package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/inventory-ledger/internal/domain"
)

const emptyHistoryMessage = "History is empty, nothing to undo."

// HistoryEntry records one Execute call
// Args references the live Item/Storage objects, so undo mutates them in place
type HistoryEntry struct {
	ID         uuid.UUID
	Operation  domain.Operation
	Args       domain.Args
	Status     domain.Status // Outcome of the original Execute
	RecordedAt time.Time
}

// Description returns a human-readable summary of the recorded call
func (e HistoryEntry) Description() string {
	return e.Operation.Describe(e.Args)
}

// Manager applies operations and keeps a LIFO history for single-step undo.
//
// Every Execute call is recorded, including calls whose guard rejected the
// mutation. One mutex covers the history and the mutation of the referenced
// objects, so the stack never disagrees with the state it would reverse.
type Manager struct {
	mu       sync.Mutex
	history  []*HistoryEntry
	reporter domain.Reporter
	warn     func(format string, args ...any)
}

// NewManager creates a Manager with empty history
// A nil reporter discards statuses
func NewManager(reporter domain.Reporter) *Manager {
	if reporter == nil {
		reporter = domain.DiscardReporter
	}
	return &Manager{
		reporter: reporter,
		warn:     func(string, ...any) {},
	}
}

// SetWarningLogger installs a printf-style sink for non-fatal warnings
func (m *Manager) SetWarningLogger(warn func(format string, args ...any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if warn == nil {
		warn = func(string, ...any) {}
	}
	m.warn = warn
}

// Execute runs op with args and records the call
// The returned status is the same one handed to the reporter
func (m *Manager) Execute(op domain.Operation, args domain.Args) domain.Status {
	_, status := m.execute(op, args)
	return status
}

// ExecuteEntry is like Execute but also returns a copy of the recorded entry
func (m *Manager) ExecuteEntry(op domain.Operation, args domain.Args) HistoryEntry {
	entry, _ := m.execute(op, args)
	return entry
}

func (m *Manager) execute(op domain.Operation, args domain.Args) (HistoryEntry, domain.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := op.Execute(args)

	if adjust, ok := op.(*domain.AdjustPrice); ok && adjust.Overwritten() && m.containsLocked(op) {
		m.warn("ledger: AdjustPrice reused before undo; earlier entries can no longer restore their original price")
	}

	entry := &HistoryEntry{
		ID:         uuid.New(),
		Operation:  op,
		Args:       args,
		Status:     status,
		RecordedAt: time.Now(),
	}
	m.history = append(m.history, entry)

	m.reporter.Report(status)
	return *entry, status
}

// Undo pops the most recent entry and reverses it with the recorded args
// With empty history it reports ErrNothingToUndo and changes nothing
func (m *Manager) Undo() domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		status := domain.Status{
			Undo:    true,
			Message: emptyHistoryMessage,
			Err:     domain.ErrNothingToUndo,
		}
		m.reporter.Report(status)
		return status
	}

	entry := m.history[len(m.history)-1]
	m.history[len(m.history)-1] = nil
	m.history = m.history[:len(m.history)-1]

	status := entry.Operation.Undo(entry.Args)
	m.reporter.Report(status)
	return status
}

// Len returns the number of recorded entries
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// HasHistory reports whether Undo has anything to reverse
func (m *Manager) HasHistory() bool {
	return m.Len() > 0
}

// Peek returns the entry the next Undo would reverse
func (m *Manager) Peek() (HistoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.history) == 0 {
		return HistoryEntry{}, false
	}
	return *m.history[len(m.history)-1], true
}

// Entries returns copies of the recorded entries, oldest first
func (m *Manager) Entries() []HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]HistoryEntry, len(m.history))
	for i, entry := range m.history {
		result[i] = *entry
	}
	return result
}

// Inspect runs fn while holding the manager lock.
// Use it to read Item and Storage fields consistently with the history.
// fn must not call back into the Manager.
func (m *Manager) Inspect(fn func(entries []HistoryEntry)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]HistoryEntry, len(m.history))
	for i, entry := range m.history {
		entries[i] = *entry
	}
	fn(entries)
}

func (m *Manager) containsLocked(op domain.Operation) bool {
	for _, entry := range m.history {
		if entry.Operation == op {
			return true
		}
	}
	return false
}
