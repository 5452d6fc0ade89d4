package domain

import "time"

// KrwAccount is a customer's home-currency (KRW) deposit account.
// Balance is held in whole won; it never goes negative at a committed state.
type KrwAccount struct {
	AcctNo   string    `json:"acctNo"`
	CustCode string    `json:"custCode"`
	Balance  int64     `json:"balance"`
	OpenedAt time.Time `json:"openedAt"`
}

// ForeignAccount is the customer's foreign-currency parent account. It holds
// no money itself; per-currency balances hang off it as ForeignBalance rows.
type ForeignAccount struct {
	AcctNo   string    `json:"acctNo"`
	CustCode string    `json:"custCode"`
	OpenedAt time.Time `json:"openedAt"`
}

// ForeignBalance is one currency's balance under a foreign parent account.
// Unique per (parent account, currency); amount in minor units of the currency.
type ForeignBalance struct {
	BalanceNo    string `json:"balanceNo"`
	ParentAcctNo string `json:"parentAcctNo"`
	CurrencyCode string `json:"currencyCode"`
	Balance      int64  `json:"balance"`
}
