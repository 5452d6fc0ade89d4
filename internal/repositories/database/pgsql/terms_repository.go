package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
)

// PgxTermsRepository implements the terms repository port using pgxpool.
type PgxTermsRepository struct {
	BaseRepository
}

// NewPgxTermsRepository creates a new PgxTermsRepository.
func NewPgxTermsRepository(db *pgxpool.Pool) *PgxTermsRepository {
	return &PgxTermsRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.TermsRepository = (*PgxTermsRepository)(nil)

const termsExistsQuery = `SELECT EXISTS (SELECT 1 FROM terms_agreements WHERE cust_code = $1);`

// HasAgreed reports whether the customer has an agreement row.
func (r *PgxTermsRepository) HasAgreed(ctx context.Context, custCode string) (bool, error) {
	var agreed bool
	if err := r.Pool.QueryRow(ctx, termsExistsQuery, custCode).Scan(&agreed); err != nil {
		return false, apperrors.NewAppError(500, "failed to check terms agreement", err)
	}
	return agreed, nil
}

// HasAgreedInTx re-checks the agreement inside an open transaction.
func (r *PgxTermsRepository) HasAgreedInTx(ctx context.Context, tx pgx.Tx, custCode string) (bool, error) {
	var agreed bool
	if err := tx.QueryRow(ctx, termsExistsQuery, custCode).Scan(&agreed); err != nil {
		return false, apperrors.NewAppError(500, "failed to check terms agreement", err)
	}
	return agreed, nil
}

// SaveAgreement records acceptance. Re-agreeing keeps the original timestamp.
func (r *PgxTermsRepository) SaveAgreement(ctx context.Context, custCode string, agreedAt time.Time) error {
	m := models.TermsAgreement{
		CustCode: custCode,
		AgreedAt: agreedAt,
	}
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO terms_agreements (cust_code, agreed_at)
		VALUES ($1, $2)
		ON CONFLICT (cust_code) DO NOTHING`,
		m.CustCode, m.AgreedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save terms agreement", err)
	}
	return nil
}
