package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/nexiumfounders/subsplit/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "ledger.v1.LedgerService"

// Fully-qualified procedure names of the LedgerService RPCs.
const (
	LedgerServiceGetSummaryProcedure       = "/ledger.v1.LedgerService/GetSummary"
	LedgerServiceSelectPeriodProcedure     = "/ledger.v1.LedgerService/SelectPeriod"
	LedgerServiceNavigatePeriodProcedure   = "/ledger.v1.LedgerService/NavigatePeriod"
	LedgerServiceSetPayerOverrideProcedure = "/ledger.v1.LedgerService/SetPayerOverride"
	LedgerServiceRecordTransferProcedure   = "/ledger.v1.LedgerService/RecordTransfer"
	LedgerServiceSetTransferDraftProcedure = "/ledger.v1.LedgerService/SetTransferDraft"
	LedgerServiceSubmitTransferProcedure   = "/ledger.v1.LedgerService/SubmitTransfer"
	LedgerServiceResetAllProcedure         = "/ledger.v1.LedgerService/ResetAll"
	LedgerServiceUndoProcedure             = "/ledger.v1.LedgerService/Undo"
	LedgerServiceRedoProcedure             = "/ledger.v1.LedgerService/Redo"
)

// LedgerServiceClient is a client for the ledger.v1.LedgerService service.
type LedgerServiceClient interface {
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error)
	SelectPeriod(context.Context, *connect.Request[api.SelectPeriodRequest]) (*connect.Response[api.SummaryResponse], error)
	NavigatePeriod(context.Context, *connect.Request[api.NavigatePeriodRequest]) (*connect.Response[api.SummaryResponse], error)
	SetPayerOverride(context.Context, *connect.Request[api.SetPayerOverrideRequest]) (*connect.Response[api.SummaryResponse], error)
	RecordTransfer(context.Context, *connect.Request[api.RecordTransferRequest]) (*connect.Response[api.RecordTransferResponse], error)
	SetTransferDraft(context.Context, *connect.Request[api.SetTransferDraftRequest]) (*connect.Response[api.SummaryResponse], error)
	SubmitTransfer(context.Context, *connect.Request[api.SubmitTransferRequest]) (*connect.Response[api.RecordTransferResponse], error)
	ResetAll(context.Context, *connect.Request[api.ResetAllRequest]) (*connect.Response[api.SummaryResponse], error)
	Undo(context.Context, *connect.Request[api.UndoRequest]) (*connect.Response[api.HistoryResponse], error)
	Redo(context.Context, *connect.Request[api.RedoRequest]) (*connect.Response[api.HistoryResponse], error)
}

// NewLedgerServiceClient constructs a client for the ledger.v1.LedgerService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{withCodec()}, opts...)
	return &ledgerServiceClient{
		getSummary:       connect.NewClient[api.GetSummaryRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		selectPeriod:     connect.NewClient[api.SelectPeriodRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceSelectPeriodProcedure, opts...),
		navigatePeriod:   connect.NewClient[api.NavigatePeriodRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceNavigatePeriodProcedure, opts...),
		setPayerOverride: connect.NewClient[api.SetPayerOverrideRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceSetPayerOverrideProcedure, opts...),
		recordTransfer:   connect.NewClient[api.RecordTransferRequest, api.RecordTransferResponse](httpClient, baseURL+LedgerServiceRecordTransferProcedure, opts...),
		setTransferDraft: connect.NewClient[api.SetTransferDraftRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceSetTransferDraftProcedure, opts...),
		submitTransfer:   connect.NewClient[api.SubmitTransferRequest, api.RecordTransferResponse](httpClient, baseURL+LedgerServiceSubmitTransferProcedure, opts...),
		resetAll:         connect.NewClient[api.ResetAllRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceResetAllProcedure, opts...),
		undo:             connect.NewClient[api.UndoRequest, api.HistoryResponse](httpClient, baseURL+LedgerServiceUndoProcedure, opts...),
		redo:             connect.NewClient[api.RedoRequest, api.HistoryResponse](httpClient, baseURL+LedgerServiceRedoProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	getSummary       *connect.Client[api.GetSummaryRequest, api.SummaryResponse]
	selectPeriod     *connect.Client[api.SelectPeriodRequest, api.SummaryResponse]
	navigatePeriod   *connect.Client[api.NavigatePeriodRequest, api.SummaryResponse]
	setPayerOverride *connect.Client[api.SetPayerOverrideRequest, api.SummaryResponse]
	recordTransfer   *connect.Client[api.RecordTransferRequest, api.RecordTransferResponse]
	setTransferDraft *connect.Client[api.SetTransferDraftRequest, api.SummaryResponse]
	submitTransfer   *connect.Client[api.SubmitTransferRequest, api.RecordTransferResponse]
	resetAll         *connect.Client[api.ResetAllRequest, api.SummaryResponse]
	undo             *connect.Client[api.UndoRequest, api.HistoryResponse]
	redo             *connect.Client[api.RedoRequest, api.HistoryResponse]
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SelectPeriod(ctx context.Context, req *connect.Request[api.SelectPeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.selectPeriod.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) NavigatePeriod(ctx context.Context, req *connect.Request[api.NavigatePeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.navigatePeriod.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetPayerOverride(ctx context.Context, req *connect.Request[api.SetPayerOverrideRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.setPayerOverride.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecordTransfer(ctx context.Context, req *connect.Request[api.RecordTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	return c.recordTransfer.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetTransferDraft(ctx context.Context, req *connect.Request[api.SetTransferDraftRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.setTransferDraft.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SubmitTransfer(ctx context.Context, req *connect.Request[api.SubmitTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	return c.submitTransfer.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ResetAll(ctx context.Context, req *connect.Request[api.ResetAllRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.resetAll.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Undo(ctx context.Context, req *connect.Request[api.UndoRequest]) (*connect.Response[api.HistoryResponse], error) {
	return c.undo.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Redo(ctx context.Context, req *connect.Request[api.RedoRequest]) (*connect.Response[api.HistoryResponse], error) {
	return c.redo.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the ledger.v1.LedgerService
// service.
type LedgerServiceHandler interface {
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error)
	SelectPeriod(context.Context, *connect.Request[api.SelectPeriodRequest]) (*connect.Response[api.SummaryResponse], error)
	NavigatePeriod(context.Context, *connect.Request[api.NavigatePeriodRequest]) (*connect.Response[api.SummaryResponse], error)
	SetPayerOverride(context.Context, *connect.Request[api.SetPayerOverrideRequest]) (*connect.Response[api.SummaryResponse], error)
	RecordTransfer(context.Context, *connect.Request[api.RecordTransferRequest]) (*connect.Response[api.RecordTransferResponse], error)
	SetTransferDraft(context.Context, *connect.Request[api.SetTransferDraftRequest]) (*connect.Response[api.SummaryResponse], error)
	SubmitTransfer(context.Context, *connect.Request[api.SubmitTransferRequest]) (*connect.Response[api.RecordTransferResponse], error)
	ResetAll(context.Context, *connect.Request[api.ResetAllRequest]) (*connect.Response[api.SummaryResponse], error)
	Undo(context.Context, *connect.Request[api.UndoRequest]) (*connect.Response[api.HistoryResponse], error)
	Redo(context.Context, *connect.Request[api.RedoRequest]) (*connect.Response[api.HistoryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{withCodec()}, opts...)
	handlers := map[string]http.Handler{
		LedgerServiceGetSummaryProcedure:       connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...),
		LedgerServiceSelectPeriodProcedure:     connect.NewUnaryHandler(LedgerServiceSelectPeriodProcedure, svc.SelectPeriod, opts...),
		LedgerServiceNavigatePeriodProcedure:   connect.NewUnaryHandler(LedgerServiceNavigatePeriodProcedure, svc.NavigatePeriod, opts...),
		LedgerServiceSetPayerOverrideProcedure: connect.NewUnaryHandler(LedgerServiceSetPayerOverrideProcedure, svc.SetPayerOverride, opts...),
		LedgerServiceRecordTransferProcedure:   connect.NewUnaryHandler(LedgerServiceRecordTransferProcedure, svc.RecordTransfer, opts...),
		LedgerServiceSetTransferDraftProcedure: connect.NewUnaryHandler(LedgerServiceSetTransferDraftProcedure, svc.SetTransferDraft, opts...),
		LedgerServiceSubmitTransferProcedure:   connect.NewUnaryHandler(LedgerServiceSubmitTransferProcedure, svc.SubmitTransfer, opts...),
		LedgerServiceResetAllProcedure:         connect.NewUnaryHandler(LedgerServiceResetAllProcedure, svc.ResetAll, opts...),
		LedgerServiceUndoProcedure:             connect.NewUnaryHandler(LedgerServiceUndoProcedure, svc.Undo, opts...),
		LedgerServiceRedoProcedure:             connect.NewUnaryHandler(LedgerServiceRedoProcedure, svc.Redo, opts...),
	}
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceGetSummaryProcedure)
}

func (UnimplementedLedgerServiceHandler) SelectPeriod(context.Context, *connect.Request[api.SelectPeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceSelectPeriodProcedure)
}

func (UnimplementedLedgerServiceHandler) NavigatePeriod(context.Context, *connect.Request[api.NavigatePeriodRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceNavigatePeriodProcedure)
}

func (UnimplementedLedgerServiceHandler) SetPayerOverride(context.Context, *connect.Request[api.SetPayerOverrideRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceSetPayerOverrideProcedure)
}

func (UnimplementedLedgerServiceHandler) RecordTransfer(context.Context, *connect.Request[api.RecordTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	return nil, unimplemented(LedgerServiceRecordTransferProcedure)
}

func (UnimplementedLedgerServiceHandler) SetTransferDraft(context.Context, *connect.Request[api.SetTransferDraftRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceSetTransferDraftProcedure)
}

func (UnimplementedLedgerServiceHandler) SubmitTransfer(context.Context, *connect.Request[api.SubmitTransferRequest]) (*connect.Response[api.RecordTransferResponse], error) {
	return nil, unimplemented(LedgerServiceSubmitTransferProcedure)
}

func (UnimplementedLedgerServiceHandler) ResetAll(context.Context, *connect.Request[api.ResetAllRequest]) (*connect.Response[api.SummaryResponse], error) {
	return nil, unimplemented(LedgerServiceResetAllProcedure)
}

func (UnimplementedLedgerServiceHandler) Undo(context.Context, *connect.Request[api.UndoRequest]) (*connect.Response[api.HistoryResponse], error) {
	return nil, unimplemented(LedgerServiceUndoProcedure)
}

func (UnimplementedLedgerServiceHandler) Redo(context.Context, *connect.Request[api.RedoRequest]) (*connect.Response[api.HistoryResponse], error) {
	return nil, unimplemented(LedgerServiceRedoProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}
