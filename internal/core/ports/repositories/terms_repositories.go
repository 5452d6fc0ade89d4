package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// TermsRepository tracks exchange-terms agreement per customer.
type TermsRepository interface {
	// HasAgreed reports whether the customer has accepted the exchange terms.
	HasAgreed(ctx context.Context, custCode string) (bool, error)

	// HasAgreedInTx is the same check run inside an open transaction, used to
	// close the revocation race between the pre-flight check and the balance
	// mutation.
	HasAgreedInTx(ctx context.Context, tx pgx.Tx, custCode string) (bool, error)

	// SaveAgreement records the customer's acceptance. Idempotent.
	SaveAgreement(ctx context.Context, custCode string, agreedAt time.Time) error
}
