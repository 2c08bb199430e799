package api

import "github.com/shopspring/decimal"

type GetSummaryRequest struct{}

type SelectPeriodRequest struct {
	Period string `json:"period"` // "YYYY-MM"
}

type NavigatePeriodRequest struct {
	Delta int `json:"delta"`
}

type SetPayerOverrideRequest struct {
	Period        string `json:"period"` // "YYYY-MM"
	ChargeID      string `json:"charge_id"`
	ParticipantID string `json:"participant_id"`
}

type RecordTransferRequest struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	// Amount is the raw typed value; it is validated server-side.
	Amount string `json:"amount"`
}

type SetTransferDraftRequest struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	Amount     string `json:"amount"`
}

type SubmitTransferRequest struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
}

type ResetAllRequest struct{}

type UndoRequest struct{}

type RedoRequest struct{}

// SummaryResponse is returned by every command so clients can re-render
// without a second call.
type SummaryResponse struct {
	Summary *Summary `json:"summary"`
}

type RecordTransferResponse struct {
	// Accepted is false when the amount or the pair was rejected; nothing
	// changed in that case.
	Accepted bool      `json:"accepted"`
	Transfer *Transfer `json:"transfer,omitempty"`
	Summary  *Summary  `json:"summary"`
}

type HistoryResponse struct {
	// Applied is false when the stack was empty.
	Applied bool     `json:"applied"`
	Summary *Summary `json:"summary"`
}

type Summary struct {
	Period       string               `json:"period"`
	PeriodLabel  string               `json:"period_label"`
	Currency     string               `json:"currency"`
	Charges      []ChargeLine         `json:"charges"`
	Participants []ParticipantSummary `json:"participants"`
	// Debts lists the non-zero cells of the matrix after transfers.
	Debts []Debt `json:"debts"`
	// Settlements lists the non-zero cells of the recorded transfers.
	Settlements      []Debt          `json:"settlements"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`
	Drafts           []Draft         `json:"drafts,omitempty"`
	CanUndo          bool            `json:"can_undo"`
	CanRedo          bool            `json:"can_redo"`
}

type ChargeLine struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	PayerID        string          `json:"payer_id"`
	DefaultPayerID string          `json:"default_payer_id"`
}

type ParticipantSummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Peers           []PeerLine      `json:"peers"`
	TotalOwedByThem decimal.Decimal `json:"total_owed_by_them"`
	TotalOwedToThem decimal.Decimal `json:"total_owed_to_them"`
}

type PeerLine struct {
	OtherID string          `json:"other_id"`
	YouOwe  decimal.Decimal `json:"you_owe"`
	TheyOwe decimal.Decimal `json:"they_owe"`
}

type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type Draft struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	Amount     string `json:"amount"`
}

type Transfer struct {
	ID         string          `json:"id"`
	DebtorID   string          `json:"debtor_id"`
	CreditorID string          `json:"creditor_id"`
	Amount     decimal.Decimal `json:"amount"`
	RecordedAt int64           `json:"recorded_at"`
}
