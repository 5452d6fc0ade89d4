package models

import "time"

// LedgerEntry mirrors the ledger_entries table. Append-only.
type LedgerEntry struct {
	EntryID            string    `db:"entry_id"`
	AcctNo             string    `db:"acct_no"`
	CounterpartyAcctNo string    `db:"counterparty_acct_no"`
	LegType            string    `db:"leg_type"`
	Amount             int64     `db:"amount"`
	Memo               string    `db:"memo"`
	OccurredAt         time.Time `db:"occurred_at"`
}
