package models

import "time"

// Customer mirrors the customers table.
type Customer struct {
	CustCode     string     `db:"cust_code"`
	CustID       string     `db:"cust_id"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	PasswordHash string     `db:"password_hash"`
	DeviceID     string     `db:"device_id"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

// TermsAgreement mirrors the terms_agreements table.
type TermsAgreement struct {
	CustCode string    `db:"cust_code"`
	AgreedAt time.Time `db:"agreed_at"`
}
