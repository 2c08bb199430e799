package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/nexiumfounders/subsplit/internal/calculator"
	"github.com/nexiumfounders/subsplit/internal/ledger"
	"github.com/nexiumfounders/subsplit/internal/middleware"
	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/pkg/api"
	"github.com/nexiumfounders/subsplit/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService on top of a single
// ledger session.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	session *ledger.Session
	logger  *slog.Logger
}

// NewLedgerService creates a new LedgerService. A nil logger uses
// slog.Default().
func NewLedgerService(session *ledger.Session, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{session: session, logger: logger}
}

// GetSummary returns the ledger as of the selected month.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return s.summaryResponse(), nil
}

// SelectPeriod selects a month by its "YYYY-MM" key.
func (s *LedgerService) SelectPeriod(ctx context.Context, req *connect.Request[api.SelectPeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	if err := s.session.SelectPeriod(ctx, req.Msg.Period); err != nil {
		return nil, toConnectError(err)
	}
	return s.summaryResponse(), nil
}

// NavigatePeriod moves the selected month by Delta.
func (s *LedgerService) NavigatePeriod(ctx context.Context, req *connect.Request[api.NavigatePeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	s.session.NavigatePeriod(ctx, req.Msg.Delta)
	return s.summaryResponse(), nil
}

// SetPayerOverride records who actually paid a charge in a month.
func (s *LedgerService) SetPayerOverride(ctx context.Context, req *connect.Request[api.SetPayerOverrideRequest]) (*connect.Response[api.SummaryResponse], error) {
	s.logger.Debug("SetPayerOverride request",
		"period", req.Msg.Period,
		"charge_id", req.Msg.ChargeID,
		"participant_id", req.Msg.ParticipantID,
		"operator_id", middleware.GetOperatorID(ctx),
	)
	if err := s.session.SetPayerOverride(ctx, req.Msg.Period, req.Msg.ChargeID, req.Msg.ParticipantID); err != nil {
		return nil, toConnectError(err)
	}
	return s.summaryResponse(), nil
}

// RecordTransfer records a payment between two participants. A rejected
// amount is not an RPC error: Accepted is false and nothing changes.
func (s *LedgerService) RecordTransfer(ctx context.Context, req *connect.Request[api.RecordTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	transfer, ok := s.session.RecordTransfer(ctx, req.Msg.DebtorID, req.Msg.CreditorID, req.Msg.Amount)
	return s.transferResponse(transfer, ok), nil
}

// SetTransferDraft stores a not yet submitted transfer amount.
func (s *LedgerService) SetTransferDraft(ctx context.Context, req *connect.Request[api.SetTransferDraftRequest]) (*connect.Response[api.SummaryResponse], error) {
	if !s.session.SetTransferDraft(req.Msg.DebtorID, req.Msg.CreditorID, req.Msg.Amount) {
		return nil, connect.NewError(connect.CodeInvalidArgument, ledger.ErrUnknownParticipant)
	}
	return s.summaryResponse(), nil
}

// SubmitTransfer records the pending draft for a pair.
func (s *LedgerService) SubmitTransfer(ctx context.Context, req *connect.Request[api.SubmitTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	transfer, ok := s.session.SubmitTransfer(ctx, req.Msg.DebtorID, req.Msg.CreditorID)
	return s.transferResponse(transfer, ok), nil
}

// ResetAll clears recorded transfers, payer overrides and drafts.
func (s *LedgerService) ResetAll(ctx context.Context, req *connect.Request[api.ResetAllRequest]) (*connect.Response[api.SummaryResponse], error) {
	s.logger.Info("ResetAll request", "operator_id", middleware.GetOperatorID(ctx))
	s.session.ResetAll(ctx)
	return s.summaryResponse(), nil
}

// Undo reverts the most recent mutation.
func (s *LedgerService) Undo(ctx context.Context, req *connect.Request[api.UndoRequest]) (*connect.Response[api.HistoryResponse], error) {
	applied := s.session.Undo(ctx)
	return connect.NewResponse(&api.HistoryResponse{Applied: applied, Summary: s.summary()}), nil
}

// Redo re-applies the most recently undone mutation.
func (s *LedgerService) Redo(ctx context.Context, req *connect.Request[api.RedoRequest]) (*connect.Response[api.HistoryResponse], error) {
	applied := s.session.Redo(ctx)
	return connect.NewResponse(&api.HistoryResponse{Applied: applied, Summary: s.summary()}), nil
}

func (s *LedgerService) transferResponse(transfer models.Transfer, ok bool) *connect.Response[api.RecordTransferResponse] {
	resp := &api.RecordTransferResponse{Accepted: ok, Summary: s.summary()}
	if ok {
		resp.Transfer = &api.Transfer{
			ID:         transfer.ID,
			DebtorID:   transfer.DebtorID,
			CreditorID: transfer.CreditorID,
			Amount:     transfer.Amount,
			RecordedAt: transfer.RecordedAt,
		}
	}
	return connect.NewResponse(resp)
}

func (s *LedgerService) summaryResponse() *connect.Response[api.SummaryResponse] {
	return connect.NewResponse(&api.SummaryResponse{Summary: s.summary()})
}

func (s *LedgerService) summary() *api.Summary {
	return toAPISummary(s.session.Summary())
}

// toAPISummary converts a ledger summary to its wire form.
func toAPISummary(sum ledger.Summary) *api.Summary {
	out := &api.Summary{
		Period:      sum.Selected.Key(),
		PeriodLabel: sum.Selected.Label(),
		Currency:    sum.Currency,
		Debts:       toAPIDebts(calculator.DebtEdges(sum.Balances.AfterTransfers)),
		Settlements: toAPIDebts(calculator.DebtEdges(sum.Settlements)),
		CanUndo:     sum.CanUndo,
		CanRedo:     sum.CanRedo,
	}
	out.OutstandingTotal = sum.Balances.AfterTransfers.Total()

	out.Charges = make([]api.ChargeLine, len(sum.Charges))
	for i, c := range sum.Charges {
		out.Charges[i] = api.ChargeLine{
			ID:             c.Charge.ID,
			Name:           c.Charge.Name,
			Price:          c.Charge.Price,
			Amount:         c.Evaluation.Amount,
			Status:         c.Evaluation.Status.String(),
			PayerID:        c.PayerID,
			DefaultPayerID: c.Charge.DefaultPayer,
		}
	}

	out.Participants = make([]api.ParticipantSummary, len(sum.Participants))
	for i, p := range sum.Participants {
		peers := make([]api.PeerLine, len(p.Peers))
		for j, line := range p.Peers {
			peers[j] = api.PeerLine{OtherID: line.OtherID, YouOwe: line.YouOwe, TheyOwe: line.TheyOwe}
		}
		out.Participants[i] = api.ParticipantSummary{
			ID:              p.Participant.ID,
			Name:            p.Participant.Name,
			Peers:           peers,
			TotalOwedByThem: p.Balance.TotalOwedByThem,
			TotalOwedToThem: p.Balance.TotalOwedToThem,
		}
	}

	for debtor, row := range sum.Drafts {
		for creditor, amount := range row {
			out.Drafts = append(out.Drafts, api.Draft{DebtorID: debtor, CreditorID: creditor, Amount: amount})
		}
	}
	slices.SortFunc(out.Drafts, func(a, b api.Draft) int {
		return cmp.Or(cmp.Compare(a.DebtorID, b.DebtorID), cmp.Compare(a.CreditorID, b.CreditorID))
	})

	return out
}

func toAPIDebts(edges []calculator.DebtEdge) []api.Debt {
	debts := make([]api.Debt, len(edges))
	for i, e := range edges {
		debts[i] = api.Debt{From: e.From, To: e.To, Amount: e.Amount}
	}
	return debts
}

// toConnectError maps ledger errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, ledger.ErrUnknownCharge),
		errors.Is(err, ledger.ErrUnknownParticipant):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
