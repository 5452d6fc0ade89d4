package domain

import "time"

// LegType indicates whether a ledger entry is a Debit or a Credit leg.
type LegType string

const (
	Debit  LegType = "DEBIT"
	Credit LegType = "CREDIT"
)

// LedgerEntry is one leg of a completed exchange. Entries are written in
// DEBIT/CREDIT pairs inside the exchange transaction and are immutable
// once committed.
type LedgerEntry struct {
	EntryID            string    `json:"entryID"`
	AcctNo             string    `json:"acctNo"`
	CounterpartyAcctNo string    `json:"counterpartyAcctNo"`
	LegType            LegType   `json:"legType"`
	Amount             int64     `json:"amount"`
	Memo               string    `json:"memo"`
	OccurredAt         time.Time `json:"occurredAt"`
}
