package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
	"github.com/nexiumfounders/subsplit/internal/storage"
)

// Load restores the settlement record and payer overrides from the store.
// Absent or malformed values fall back to the zero defaults; Load never
// fails. History is left untouched.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settlements, err := s.loadSettlements(ctx)
	if err != nil {
		s.logLoadFailure(storage.KeySettlements, err)
		settlements = models.NewMatrix(s.ids)
	}
	overrides, err := s.loadOverrides(ctx)
	if err != nil {
		s.logLoadFailure(storage.KeyPayerOverrides, err)
		overrides = models.PayerOverrides{}
	}

	s.live.Settlements = settlements
	s.live.Overrides = overrides
	s.logger.Info("Ledger state loaded",
		"recorded_total", settlements.Total().String(),
		"override_periods", len(overrides),
	)
}

func (s *Session) logLoadFailure(key string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("No persisted state, using defaults", "key", key)
		return
	}
	s.logger.Warn("Persisted state unreadable, using defaults", "key", key, "error", err)
}

func (s *Session) loadSettlements(ctx context.Context) (*models.Matrix, error) {
	raw, err := s.store.Get(ctx, storage.KeySettlements)
	if err != nil {
		return nil, err
	}
	var values map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode settlements: %w", err)
	}
	for debtor, row := range values {
		for creditor, amount := range row {
			if amount.IsNegative() {
				return nil, fmt.Errorf("decode settlements: negative amount %s for %s→%s", amount, debtor, creditor)
			}
		}
	}
	return models.MatrixFromMap(s.ids, values), nil
}

func (s *Session) loadOverrides(ctx context.Context) (models.PayerOverrides, error) {
	raw, err := s.store.Get(ctx, storage.KeyPayerOverrides)
	if err != nil {
		return nil, err
	}
	var overrides models.PayerOverrides
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("decode payer overrides: %w", err)
	}
	return s.knownOverrides(overrides), nil
}

// knownOverrides keeps only entries naming a valid period, a charge in the
// book and a participant. Null rows decode as nil maps and are dropped too.
func (s *Session) knownOverrides(in models.PayerOverrides) models.PayerOverrides {
	out := models.PayerOverrides{}
	for periodKey, row := range in {
		if _, err := period.Parse(periodKey); err != nil {
			s.logger.Warn("Dropping payer overrides for invalid period", "period", periodKey)
			continue
		}
		for chargeID, payer := range row {
			_, chargeOK := s.book.Charge(chargeID)
			_, payerOK := s.book.Participant(payer)
			if !chargeOK || !payerOK {
				s.logger.Warn("Dropping unknown payer override",
					"period", periodKey, "charge_id", chargeID, "participant_id", payer)
				continue
			}
			out.Set(periodKey, chargeID, payer)
		}
	}
	return out
}

// persistSettlements and persistOverrides must be called with mu held.
func (s *Session) persistSettlements(ctx context.Context) {
	s.put(ctx, storage.KeySettlements, s.live.Settlements.ToMap())
}

func (s *Session) persistOverrides(ctx context.Context) {
	s.put(ctx, storage.KeyPayerOverrides, s.live.Overrides)
}

func (s *Session) put(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err == nil {
		err = s.store.Put(ctx, key, b)
	}
	if err != nil {
		s.metrics.ObservePersistFailure(key)
		s.logger.Warn("Persist failed", "key", key, "error", err)
	}
}
