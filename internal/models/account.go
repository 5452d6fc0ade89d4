package models

import "time"

// KrwAccount mirrors the krw_accounts table.
type KrwAccount struct {
	AcctNo   string    `db:"acct_no"`
	CustCode string    `db:"cust_code"`
	Balance  int64     `db:"balance"`
	OpenedAt time.Time `db:"opened_at"`
}

// ForeignAccount mirrors the foreign_accounts table (parent account only,
// balances live in foreign_balances).
type ForeignAccount struct {
	AcctNo   string    `db:"acct_no"`
	CustCode string    `db:"cust_code"`
	OpenedAt time.Time `db:"opened_at"`
}

// ForeignBalance mirrors the foreign_balances table. Unique on
// (parent_acct_no, currency_code).
type ForeignBalance struct {
	BalanceNo    string `db:"balance_no"`
	ParentAcctNo string `db:"parent_acct_no"`
	CurrencyCode string `db:"currency_code"`
	Balance      int64  `db:"balance"`
}
