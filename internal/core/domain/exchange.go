package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says which way money moves in an exchange.
type Direction string

const (
	// Buy converts KRW into a foreign currency.
	Buy Direction = "BUY"
	// Sell converts a foreign currency back into KRW.
	Sell Direction = "SELL"
)

// HomeCurrencyCode is the fixed home-currency leg of every exchange.
const HomeCurrencyCode = "KRW"

// ExchangeRequest is a customer's conversion instruction. It is transient:
// consumed by the engine and never persisted directly.
type ExchangeRequest struct {
	Direction     Direction
	CurrencyCode  string // foreign currency of the non-KRW leg
	HomeAmount    int64  // requested KRW amount, set for BUY
	ForeignAmount int64  // requested foreign amount, set for SELL
}

// Amount returns the source-side amount for the request's direction.
func (r ExchangeRequest) Amount() int64 {
	if r.Direction == Sell {
		return r.ForeignAmount
	}
	return r.HomeAmount
}

// ExchangeResult is the immutable outcome of a committed exchange. It is
// constructed once from the final computed fields, never filled in piecemeal.
type ExchangeResult struct {
	ExchangeID    string          `json:"exchangeID"`
	CustCode      string          `json:"custCode"`
	Direction     Direction       `json:"direction"`
	CurrencyCode  string          `json:"currencyCode"`
	HomeAmount    int64           `json:"homeAmount"`
	ForeignAmount int64           `json:"foreignAmount"`
	AppliedRate   decimal.Decimal `json:"appliedRate"`
	KrwAcctNo     string          `json:"krwAcctNo"`
	ForeignAcctNo string          `json:"foreignAcctNo"`
	RequestedAt   time.Time       `json:"requestedAt"`
}
