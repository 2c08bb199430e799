package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/nexiumfounders/subsplit/internal/ledger"
	"github.com/nexiumfounders/subsplit/internal/middleware"
	"github.com/nexiumfounders/subsplit/internal/models"
	"github.com/nexiumfounders/subsplit/internal/period"
	"github.com/nexiumfounders/subsplit/internal/storage"
	"github.com/nexiumfounders/subsplit/internal/storage/sqlite"
	"github.com/nexiumfounders/subsplit/pkg/api"
	"github.com/nexiumfounders/subsplit/pkg/api/apiconnect"
)

var aug2025 = period.Period{Year: 2025, Month: time.August}

func testBook() models.Book {
	return models.Book{
		Currency: "EGP",
		Participants: []models.Participant{
			{ID: "faris", Name: "Faris Elnabarawi"},
			{ID: "omar", Name: "Omar Badr"},
			{ID: "ahmed", Name: "Ahmed Sherif"},
		},
		Charges: []models.RecurringCharge{
			{ID: "chatgpt", Name: "ChatGPT Plus", Price: decimal.NewFromInt(600), Start: aug2025, DefaultPayer: "faris"},
			{ID: "gemini", Name: "Gemini Pro", Price: decimal.NewFromInt(700), Start: aug2025, FirstPeriodFree: true, DefaultPayer: "ahmed"},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAuthInterceptor returns a Connect interceptor that sets a test operator ID in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.OperatorIDKey, "test-operator")
			return next(ctx, req)
		}
	}
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (apiconnect.LedgerServiceClient, *sqlite.SQLiteStore, func()) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	session := ledger.New(testBook(), store,
		ledger.WithClock(func() time.Time { return time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC) }),
		ledger.WithLogger(discardLogger()),
	)
	session.Load(context.Background())

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(nil), testAuthInterceptor())
	path, handler := apiconnect.NewLedgerServiceHandler(NewLedgerService(session, discardLogger()), interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
	}
	return client, store, cleanup
}

func mustDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestGetSummary(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := client.GetSummary(context.Background(), connect.NewRequest(&api.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	sum := resp.Msg.Summary

	if sum.Period != "2025-08" {
		t.Errorf("expected period 2025-08, got %s", sum.Period)
	}
	if sum.PeriodLabel != "August 2025" {
		t.Errorf("expected label 'August 2025', got '%s'", sum.PeriodLabel)
	}
	if sum.Currency != "EGP" {
		t.Errorf("expected currency EGP, got %s", sum.Currency)
	}
	if sum.CanUndo || sum.CanRedo {
		t.Errorf("fresh ledger should have empty history")
	}

	if len(sum.Charges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(sum.Charges))
	}
	if sum.Charges[0].Status != "Due" {
		t.Errorf("chatgpt status: expected Due, got %s", sum.Charges[0].Status)
	}
	mustDecimal(t, sum.Charges[0].Amount, "600")
	if sum.Charges[1].Status != "First Month Free" {
		t.Errorf("gemini status: expected 'First Month Free', got %s", sum.Charges[1].Status)
	}
	mustDecimal(t, sum.Charges[1].Amount, "0")

	// omar and ahmed each owe faris a third of ChatGPT
	if len(sum.Debts) != 2 {
		t.Fatalf("expected 2 debts, got %d: %+v", len(sum.Debts), sum.Debts)
	}
	for _, d := range sum.Debts {
		if d.To != "faris" {
			t.Errorf("expected debt to faris, got %+v", d)
		}
		mustDecimal(t, d.Amount, "200")
	}
	mustDecimal(t, sum.OutstandingTotal, "400")
	mustDecimal(t, sum.Participants[0].TotalOwedToThem, "400")
}

func TestRecordTransfer_SettlesDebt(t *testing.T) {
	client, store, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.RecordTransfer(ctx, connect.NewRequest(&api.RecordTransferRequest{
		DebtorID:   "omar",
		CreditorID: "faris",
		Amount:     "200",
	}))
	if err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}
	if !resp.Msg.Accepted || resp.Msg.Transfer == nil {
		t.Fatalf("expected transfer to be accepted, got %+v", resp.Msg)
	}
	if resp.Msg.Transfer.ID == "" {
		t.Errorf("expected a transfer id")
	}
	if len(resp.Msg.Summary.Debts) != 1 || resp.Msg.Summary.Debts[0].From != "ahmed" {
		t.Errorf("expected only ahmed's debt to remain, got %+v", resp.Msg.Summary.Debts)
	}
	if len(resp.Msg.Summary.Settlements) != 1 {
		t.Errorf("expected one recorded settlement, got %+v", resp.Msg.Summary.Settlements)
	}
	if !resp.Msg.Summary.CanUndo {
		t.Errorf("expected undo to be available")
	}

	if _, err := store.Get(ctx, storage.KeySettlements); err != nil {
		t.Errorf("expected settlements to be persisted: %v", err)
	}
}

func TestRecordTransfer_RejectedAmount(t *testing.T) {
	client, store, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	for _, amount := range []string{"", "0", "-5", "abc"} {
		resp, err := client.RecordTransfer(ctx, connect.NewRequest(&api.RecordTransferRequest{
			DebtorID:   "omar",
			CreditorID: "faris",
			Amount:     amount,
		}))
		if err != nil {
			t.Fatalf("RecordTransfer(%q) failed: %v", amount, err)
		}
		if resp.Msg.Accepted {
			t.Errorf("amount %q should be rejected", amount)
		}
		if resp.Msg.Summary.CanUndo {
			t.Errorf("amount %q should not create an undo step", amount)
		}
	}

	if _, err := store.Get(ctx, storage.KeySettlements); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected nothing persisted, got %v", err)
	}
}

func TestSelectPeriod_InvalidToken(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := client.SelectPeriod(context.Background(), connect.NewRequest(&api.SelectPeriodRequest{Period: "2025-13"}))
	if err == nil {
		t.Fatal("expected error for malformed period")
	}
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", connect.CodeOf(err))
	}
}

func TestSelectAndNavigatePeriod(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.SelectPeriod(ctx, connect.NewRequest(&api.SelectPeriodRequest{Period: "2025-07"}))
	if err != nil {
		t.Fatalf("SelectPeriod failed: %v", err)
	}
	if resp.Msg.Summary.Charges[0].Status != "Not started" {
		t.Errorf("expected 'Not started' before the first month, got %s", resp.Msg.Summary.Charges[0].Status)
	}
	if len(resp.Msg.Summary.Debts) != 0 {
		t.Errorf("expected no debts before any charge started, got %+v", resp.Msg.Summary.Debts)
	}

	resp, err = client.NavigatePeriod(ctx, connect.NewRequest(&api.NavigatePeriodRequest{Delta: 2}))
	if err != nil {
		t.Fatalf("NavigatePeriod failed: %v", err)
	}
	if resp.Msg.Summary.Period != "2025-09" {
		t.Errorf("expected 2025-09, got %s", resp.Msg.Summary.Period)
	}
	// Sept adds a second ChatGPT month (faris) and the first paid Gemini
	// month (ahmed): omar owes 400 + 700/3.
	for _, p := range resp.Msg.Summary.Participants {
		if p.ID == "omar" {
			mustDecimal(t, p.TotalOwedByThem.Round(2), "633.33")
		}
	}
}

func TestSetPayerOverride(t *testing.T) {
	client, store, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.SetPayerOverride(ctx, connect.NewRequest(&api.SetPayerOverrideRequest{
		Period:        "2025-08",
		ChargeID:      "chatgpt",
		ParticipantID: "omar",
	}))
	if err != nil {
		t.Fatalf("SetPayerOverride failed: %v", err)
	}
	if resp.Msg.Summary.Charges[0].PayerID != "omar" {
		t.Errorf("expected payer omar, got %s", resp.Msg.Summary.Charges[0].PayerID)
	}
	if resp.Msg.Summary.Charges[0].DefaultPayerID != "faris" {
		t.Errorf("default payer should stay faris")
	}
	if _, err := store.Get(ctx, storage.KeyPayerOverrides); err != nil {
		t.Errorf("expected overrides to be persisted: %v", err)
	}

	_, err = client.SetPayerOverride(ctx, connect.NewRequest(&api.SetPayerOverrideRequest{
		Period:        "2025-08",
		ChargeID:      "netflix",
		ParticipantID: "omar",
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("unknown charge: expected InvalidArgument, got %v", err)
	}
}

func TestUndoRedo(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	undo, err := client.Undo(ctx, connect.NewRequest(&api.UndoRequest{}))
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if undo.Msg.Applied {
		t.Errorf("undo on empty history should not apply")
	}

	if _, err := client.RecordTransfer(ctx, connect.NewRequest(&api.RecordTransferRequest{
		DebtorID: "ahmed", CreditorID: "faris", Amount: "200",
	})); err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}

	undo, err = client.Undo(ctx, connect.NewRequest(&api.UndoRequest{}))
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !undo.Msg.Applied || !undo.Msg.Summary.CanRedo || undo.Msg.Summary.CanUndo {
		t.Errorf("unexpected history flags after undo: %+v", undo.Msg)
	}
	if len(undo.Msg.Summary.Settlements) != 0 {
		t.Errorf("expected no settlements after undo, got %+v", undo.Msg.Summary.Settlements)
	}

	redo, err := client.Redo(ctx, connect.NewRequest(&api.RedoRequest{}))
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if !redo.Msg.Applied || len(redo.Msg.Summary.Settlements) != 1 {
		t.Errorf("expected the transfer back after redo, got %+v", redo.Msg)
	}
}

func TestDraftsAndReset(t *testing.T) {
	client, store, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	resp, err := client.SetTransferDraft(ctx, connect.NewRequest(&api.SetTransferDraftRequest{
		DebtorID: "omar", CreditorID: "faris", Amount: "150",
	}))
	if err != nil {
		t.Fatalf("SetTransferDraft failed: %v", err)
	}
	if len(resp.Msg.Summary.Drafts) != 1 || resp.Msg.Summary.Drafts[0].Amount != "150" {
		t.Errorf("expected one draft of 150, got %+v", resp.Msg.Summary.Drafts)
	}

	_, err = client.SetTransferDraft(ctx, connect.NewRequest(&api.SetTransferDraftRequest{
		DebtorID: "omar", CreditorID: "omar", Amount: "1",
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("self draft: expected InvalidArgument, got %v", err)
	}

	submitted, err := client.SubmitTransfer(ctx, connect.NewRequest(&api.SubmitTransferRequest{DebtorID: "omar", CreditorID: "faris"}))
	if err != nil {
		t.Fatalf("SubmitTransfer failed: %v", err)
	}
	if !submitted.Msg.Accepted {
		t.Fatalf("expected draft to be submitted")
	}
	mustDecimal(t, submitted.Msg.Transfer.Amount, "150")

	if _, err := client.SetTransferDraft(ctx, connect.NewRequest(&api.SetTransferDraftRequest{
		DebtorID: "ahmed", CreditorID: "faris", Amount: "20",
	})); err != nil {
		t.Fatalf("SetTransferDraft failed: %v", err)
	}

	reset, err := client.ResetAll(ctx, connect.NewRequest(&api.ResetAllRequest{}))
	if err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}
	sum := reset.Msg.Summary
	if len(sum.Settlements) != 0 || len(sum.Drafts) != 0 {
		t.Errorf("expected reset to clear settlements and drafts, got %+v", sum)
	}
	if !sum.CanUndo {
		t.Errorf("reset should be undoable")
	}
	for _, key := range []string{storage.KeySettlements, storage.KeyPayerOverrides} {
		if _, err := store.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected %s to be deleted, got %v", key, err)
		}
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	client, _, cleanup := setupTestServer(t)
	defer cleanup()

	req := connect.NewRequest(&api.GetSummaryRequest{})
	req.Header().Set(middleware.RequestIDHeader, "req-123")
	resp, err := client.GetSummary(context.Background(), req)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if got := resp.Header().Get(middleware.RequestIDHeader); got != "req-123" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}
}
