package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
)

// PgxAccountRepository implements the account repository ports using pgxpool.
type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new PgxAccountRepository.
func NewPgxAccountRepository(db *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func toDomainKrwAccount(m models.KrwAccount) domain.KrwAccount {
	return domain.KrwAccount{
		AcctNo:   m.AcctNo,
		CustCode: m.CustCode,
		Balance:  m.Balance,
		OpenedAt: m.OpenedAt,
	}
}

func toDomainForeignAccount(m models.ForeignAccount) domain.ForeignAccount {
	return domain.ForeignAccount{
		AcctNo:   m.AcctNo,
		CustCode: m.CustCode,
		OpenedAt: m.OpenedAt,
	}
}

func toDomainForeignBalance(m models.ForeignBalance) domain.ForeignBalance {
	return domain.ForeignBalance{
		BalanceNo:    m.BalanceNo,
		ParentAcctNo: m.ParentAcctNo,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
	}
}

// FindKrwAccountByCustomer retrieves the customer's KRW account without locking.
func (r *PgxAccountRepository) FindKrwAccountByCustomer(ctx context.Context, custCode string) (*domain.KrwAccount, error) {
	query := `
		SELECT acct_no, cust_code, balance, opened_at
		FROM krw_accounts
		WHERE cust_code = $1;
	`

	var m models.KrwAccount
	err := r.Pool.QueryRow(ctx, query, custCode).Scan(&m.AcctNo, &m.CustCode, &m.Balance, &m.OpenedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("KRW account not found for customer " + custCode)
		}
		return nil, apperrors.NewAppError(500, "failed to find KRW account", err)
	}

	acct := toDomainKrwAccount(m)
	return &acct, nil
}

// FindForeignAccountByCustomer retrieves the customer's foreign parent account.
func (r *PgxAccountRepository) FindForeignAccountByCustomer(ctx context.Context, custCode string) (*domain.ForeignAccount, error) {
	query := `
		SELECT acct_no, cust_code, opened_at
		FROM foreign_accounts
		WHERE cust_code = $1;
	`

	var m models.ForeignAccount
	err := r.Pool.QueryRow(ctx, query, custCode).Scan(&m.AcctNo, &m.CustCode, &m.OpenedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("foreign account not found for customer " + custCode)
		}
		return nil, apperrors.NewAppError(500, "failed to find foreign account", err)
	}

	acct := toDomainForeignAccount(m)
	return &acct, nil
}

// FindForeignBalance retrieves one currency sub-balance without locking.
func (r *PgxAccountRepository) FindForeignBalance(ctx context.Context, parentAcctNo string, currencyCode string) (*domain.ForeignBalance, error) {
	query := `
		SELECT balance_no, parent_acct_no, currency_code, balance
		FROM foreign_balances
		WHERE parent_acct_no = $1 AND currency_code = $2;
	`

	var m models.ForeignBalance
	err := r.Pool.QueryRow(ctx, query, parentAcctNo, currencyCode).Scan(&m.BalanceNo, &m.ParentAcctNo, &m.CurrencyCode, &m.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %s balance under account %s", currencyCode, parentAcctNo))
		}
		return nil, apperrors.NewAppError(500, "failed to find foreign balance", err)
	}

	balance := toDomainForeignBalance(m)
	return &balance, nil
}

// FindKrwAccountForUpdate locks and retrieves the customer's KRW account row.
// Callers lock the KRW row before any foreign balance row.
func (r *PgxAccountRepository) FindKrwAccountForUpdate(ctx context.Context, tx pgx.Tx, custCode string) (*domain.KrwAccount, error) {
	query := `
		SELECT acct_no, cust_code, balance, opened_at
		FROM krw_accounts
		WHERE cust_code = $1
		FOR UPDATE;
	`

	var m models.KrwAccount
	err := tx.QueryRow(ctx, query, custCode).Scan(&m.AcctNo, &m.CustCode, &m.Balance, &m.OpenedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("KRW account not found for customer " + custCode)
		}
		return nil, apperrors.NewAppError(500, "failed to lock KRW account", err)
	}

	acct := toDomainKrwAccount(m)
	return &acct, nil
}

// FindForeignBalanceForUpdate locks and retrieves one currency sub-balance row.
func (r *PgxAccountRepository) FindForeignBalanceForUpdate(ctx context.Context, tx pgx.Tx, parentAcctNo string, currencyCode string) (*domain.ForeignBalance, error) {
	query := `
		SELECT balance_no, parent_acct_no, currency_code, balance
		FROM foreign_balances
		WHERE parent_acct_no = $1 AND currency_code = $2
		FOR UPDATE;
	`

	var m models.ForeignBalance
	err := tx.QueryRow(ctx, query, parentAcctNo, currencyCode).Scan(&m.BalanceNo, &m.ParentAcctNo, &m.CurrencyCode, &m.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no %s balance under account %s", currencyCode, parentAcctNo))
		}
		return nil, apperrors.NewAppError(500, "failed to lock foreign balance", err)
	}

	balance := toDomainForeignBalance(m)
	return &balance, nil
}

// UpdateKrwBalanceInTx writes the new KRW balance inside the transaction.
func (r *PgxAccountRepository) UpdateKrwBalanceInTx(ctx context.Context, tx pgx.Tx, acctNo string, newBalance int64) error {
	tag, err := tx.Exec(ctx, `UPDATE krw_accounts SET balance = $1 WHERE acct_no = $2`, newBalance, acctNo)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update KRW balance", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("KRW account not found: " + acctNo)
	}
	return nil
}

// UpdateForeignBalanceInTx writes the new sub-balance inside the transaction.
func (r *PgxAccountRepository) UpdateForeignBalanceInTx(ctx context.Context, tx pgx.Tx, balanceNo string, newBalance int64) error {
	tag, err := tx.Exec(ctx, `UPDATE foreign_balances SET balance = $1 WHERE balance_no = $2`, newBalance, balanceNo)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update foreign balance", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("foreign balance not found: " + balanceNo)
	}
	return nil
}
