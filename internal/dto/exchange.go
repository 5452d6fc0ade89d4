package dto

import (
	"time"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRequest is the inbound conversion instruction. The customer code is
// never client-supplied; it comes from the authenticated context.
type ExchangeRequest struct {
	Direction       string `json:"direction" binding:"required,direction"`
	ForeignCurrency string `json:"foreignCurrency" binding:"required,len=3,alpha"`
	HomeAmount      int64  `json:"homeAmount"`    // present for BUY
	ForeignAmount   int64  `json:"foreignAmount"` // present for SELL
}

// ExchangeResponse reports a committed exchange back to the caller.
type ExchangeResponse struct {
	Status        string          `json:"status"`
	HomeAmount    int64           `json:"homeAmount"`
	ForeignAmount int64           `json:"foreignAmount"`
	AppliedRate   decimal.Decimal `json:"appliedRate"`
}

// ToExchangeResponse maps a domain result to the response shape.
func ToExchangeResponse(res *domain.ExchangeResult) ExchangeResponse {
	return ExchangeResponse{
		Status:        "OK",
		HomeAmount:    res.HomeAmount,
		ForeignAmount: res.ForeignAmount,
		AppliedRate:   res.AppliedRate,
	}
}

// BalanceResponse is the lock-free balance view for one currency.
type BalanceResponse struct {
	KrwBalance  int64  `json:"krwBalance"`
	FrgnBalance int64  `json:"frgnBalance"`
	KrwAcctNo   string `json:"krwAcctNo"`
	FrgnAcctNo  string `json:"frgnAcctNo"`
}

// LedgerEntryResponse is one transfer-history row.
type LedgerEntryResponse struct {
	EntryID            string `json:"entryID"`
	AcctNo             string `json:"acctNo"`
	CounterpartyAcctNo string `json:"counterpartyAcctNo"`
	LegType            string `json:"legType"`
	Amount             int64  `json:"amount"`
	Memo               string `json:"memo"`
	OccurredAt         string `json:"occurredAt"`
}

// ListHistoryParams holds pagination parameters for the history listing.
type ListHistoryParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListHistoryResponse is a page of transfer history.
type ListHistoryResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLedgerEntryResponses maps domain entries to response rows.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			EntryID:            e.EntryID,
			AcctNo:             e.AcctNo,
			CounterpartyAcctNo: e.CounterpartyAcctNo,
			LegType:            string(e.LegType),
			Amount:             e.Amount,
			Memo:               e.Memo,
			OccurredAt:         e.OccurredAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}
