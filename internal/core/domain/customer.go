package domain

import "time"

// Customer is the bank customer owning the exchange accounts.
// CustID is the login identifier; CustCode is the internal key the account
// and ledger rows reference.
type Customer struct {
	CustCode     string     `json:"custCode"`
	CustID       string     `json:"custID"`
	Name         string     `json:"name"`
	Phone        string     `json:"-"`
	PasswordHash string     `json:"-"`
	DeviceID     string     `json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}