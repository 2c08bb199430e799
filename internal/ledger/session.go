// Package ledger holds the live ledger state and the commands that change
// it.
//
// A Session is the single writer. Every command that mutates state takes a
// history snapshot first and persists the touched structure afterwards.
// Persistence is best-effort: a failed write is logged and counted but the
// in-memory change stands.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexiumfounders/subsplit/internal/history"
	"github.com/nexiumfounders/subsplit/internal/metrics"
	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/money"
	"github.com/nexiumfounders/subsplit/internal/period"
	"github.com/nexiumfounders/subsplit/internal/storage"
)

var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrUnknownCharge      = errors.New("unknown charge")
)

// ErrInvalidPeriod is returned by SelectPeriod and SetPayerOverride for a
// malformed "YYYY-MM" token. The command is rejected without a snapshot.
var ErrInvalidPeriod = period.ErrInvalidPeriod

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeNoop     = "noop"
)

// Session is the process-wide ledger state handle.
type Session struct {
	mu sync.Mutex

	book    models.Book
	ids     []string
	store   storage.Store
	history *history.Controller[State]
	live    State
	drafts  map[string]map[string]string

	logger       *slog.Logger
	metrics      *metrics.Metrics
	now          func() time.Time
	historyLimit int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics enables command and persistence metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithClock sets the clock used for the initial selected month and transfer
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithHistoryLimit caps the number of undo steps. Zero means unbounded.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// New creates a session over book with zeroed state and the current month
// selected. Call Load to restore persisted state.
func New(book models.Book, store storage.Store, opts ...Option) *Session {
	s := &Session{
		book:   book,
		ids:    book.ParticipantIDs(),
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = history.New[State](history.WithLimit(s.historyLimit))
	s.live = State{
		Settlements: models.NewMatrix(s.ids),
		Overrides:   models.PayerOverrides{},
		Selected:    period.Of(s.now()),
	}
	s.drafts = make(map[string]map[string]string)
	return s
}

// Book returns the ledger configuration.
func (s *Session) Book() models.Book {
	return s.book
}

// State returns a deep copy of the live state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Clone()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// snapshot must be called with mu held, before the mutation.
func (s *Session) snapshot() {
	s.history.Snapshot(s.live)
	s.metrics.ObserveHistory(s.history.Depth())
}

// SelectPeriod selects the month given as "YYYY-MM". A malformed token is
// rejected: no snapshot is taken and the selection does not change.
func (s *Session) SelectPeriod(ctx context.Context, token string) error {
	p, err := period.Parse(token)
	if err != nil {
		s.metrics.ObserveCommand("select_period", outcomeRejected)
		s.logger.Warn("Period selection rejected", "token", token, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot()
	s.live.Selected = p
	s.metrics.ObserveCommand("select_period", outcomeApplied)
	s.logger.Debug("Period selected", "period", p.Key())
	return nil
}

// NavigatePeriod moves the selection by delta months.
func (s *Session) NavigatePeriod(ctx context.Context, delta int) period.Period {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot()
	s.live.Selected = s.live.Selected.Shift(delta)
	s.metrics.ObserveCommand("navigate_period", outcomeApplied)
	s.logger.Debug("Period navigated", "delta", delta, "period", s.live.Selected.Key())
	return s.live.Selected
}

// SetPayerOverride records participantID as the payer of chargeID in the
// month periodKey.
func (s *Session) SetPayerOverride(ctx context.Context, periodKey, chargeID, participantID string) error {
	p, err := period.Parse(periodKey)
	if err != nil {
		s.metrics.ObserveCommand("set_payer", outcomeRejected)
		return err
	}
	if _, ok := s.book.Charge(chargeID); !ok {
		s.metrics.ObserveCommand("set_payer", outcomeRejected)
		return ErrUnknownCharge
	}
	if _, ok := s.book.Participant(participantID); !ok {
		s.metrics.ObserveCommand("set_payer", outcomeRejected)
		return ErrUnknownParticipant
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot()
	s.live.Overrides.Set(p.Key(), chargeID, participantID)
	s.metrics.ObserveCommand("set_payer", outcomeApplied)
	s.logger.Info("Payer override set", "period", p.Key(), "charge_id", chargeID, "payer", participantID)
	s.persistOverrides(ctx)
	return nil
}

// RecordTransfer records that debtor paid creditor the amount typed in raw.
// Invalid amounts (empty, non-numeric, zero, negative) and invalid pairs
// are rejected silently: the result is false and nothing changes.
func (s *Session) RecordTransfer(ctx context.Context, debtor, creditor, raw string) (models.Transfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordTransfer(ctx, debtor, creditor, raw)
}

func (s *Session) recordTransfer(ctx context.Context, debtor, creditor, raw string) (models.Transfer, bool) {
	amount, err := money.ParseAmount(raw)
	if err != nil || debtor == creditor || !s.live.Settlements.Has(debtor) || !s.live.Settlements.Has(creditor) {
		s.metrics.ObserveCommand("record_transfer", outcomeRejected)
		s.logger.Debug("Transfer rejected", "debtor", debtor, "creditor", creditor, "amount", raw)
		return models.Transfer{}, false
	}

	s.snapshot()
	s.live.Settlements.Add(debtor, creditor, amount)

	transfer := models.Transfer{
		ID:         uuid.NewString(),
		DebtorID:   debtor,
		CreditorID: creditor,
		Amount:     amount,
		RecordedAt: s.now().Unix(),
	}
	s.metrics.ObserveCommand("record_transfer", outcomeApplied)
	s.logger.Info("Transfer recorded",
		"transfer_id", transfer.ID,
		"debtor", debtor,
		"creditor", creditor,
		"amount", amount.String(),
	)
	s.persistSettlements(ctx)
	return transfer, true
}

// SetTransferDraft stores the not yet submitted amount typed for the
// debtor→creditor pair. Drafts are not part of undo history.
func (s *Session) SetTransferDraft(debtor, creditor, raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if debtor == creditor || !s.live.Settlements.Has(debtor) || !s.live.Settlements.Has(creditor) {
		return false
	}
	row, ok := s.drafts[debtor]
	if !ok {
		row = make(map[string]string)
		s.drafts[debtor] = row
	}
	row[creditor] = raw
	return true
}

// Draft returns the pending amount for debtor→creditor, or "".
func (s *Session) Draft(debtor, creditor string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[debtor][creditor]
}

// SubmitTransfer records the pending draft for debtor→creditor and clears
// it. A rejected draft is left in place.
func (s *Session) SubmitTransfer(ctx context.Context, debtor, creditor string) (models.Transfer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transfer, ok := s.recordTransfer(ctx, debtor, creditor, s.drafts[debtor][creditor])
	if ok {
		delete(s.drafts[debtor], creditor)
	}
	return transfer, ok
}

// ResetAll zeroes the settlement record, clears every payer override and
// pending draft, and deletes both persisted keys. It can be undone.
func (s *Session) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot()
	s.live.Settlements = models.NewMatrix(s.ids)
	s.live.Overrides = models.PayerOverrides{}
	s.drafts = make(map[string]map[string]string)
	s.metrics.ObserveCommand("reset", outcomeApplied)
	s.logger.Info("Ledger reset")

	if err := s.store.Delete(ctx, storage.KeySettlements, storage.KeyPayerOverrides); err != nil {
		s.metrics.ObservePersistFailure(storage.KeySettlements)
		s.metrics.ObservePersistFailure(storage.KeyPayerOverrides)
		s.logger.Warn("Persist failed", "op", "reset", "error", err)
	}
}

// Undo restores the state before the most recent mutation. It reports
// false when there is nothing to undo.
func (s *Session) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	restored, ok := s.history.Undo(s.live)
	return s.restore(ctx, "undo", restored, ok)
}

// Redo re-applies the most recently undone mutation. It reports false when
// there is nothing to redo.
func (s *Session) Redo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	restored, ok := s.history.Redo(s.live)
	return s.restore(ctx, "redo", restored, ok)
}

func (s *Session) restore(ctx context.Context, action string, restored State, ok bool) bool {
	if !ok {
		s.metrics.ObserveCommand(action, outcomeNoop)
		return false
	}
	prev := s.live
	s.live = restored
	s.metrics.ObserveCommand(action, outcomeApplied)
	s.metrics.ObserveHistory(s.history.Depth())
	s.logger.Debug("History restored", "action", action, "period", restored.Selected.Key())

	if !prev.Settlements.Equal(restored.Settlements) {
		s.persistSettlements(ctx)
	}
	if !prev.Overrides.Equal(restored.Overrides) {
		s.persistOverrides(ctx)
	}
	return true
}
