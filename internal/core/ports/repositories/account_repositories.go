package repositories

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines lock-free read operations for account data. Reads on
// this path may observe a balance that a concurrent exchange is about to
// change; that is acceptable for reporting.
type AccountReader interface {
	// FindKrwAccountByCustomer retrieves the customer's KRW account.
	FindKrwAccountByCustomer(ctx context.Context, custCode string) (*domain.KrwAccount, error)

	// FindForeignAccountByCustomer retrieves the customer's foreign parent account.
	FindForeignAccountByCustomer(ctx context.Context, custCode string) (*domain.ForeignAccount, error)

	// FindForeignBalance retrieves one currency's balance under a parent account.
	FindForeignBalance(ctx context.Context, parentAcctNo, currencyCode string) (*domain.ForeignBalance, error)
}

// AccountLockSupport defines the row-locking reads used inside an exchange
// transaction. Callers must acquire the KRW row before the foreign balance
// row; the fixed order is what prevents lock-ordering deadlocks between
// concurrent exchanges on the same customer.
type AccountLockSupport interface {
	// FindKrwAccountForUpdate selects the KRW account row FOR UPDATE within tx.
	FindKrwAccountForUpdate(ctx context.Context, tx pgx.Tx, custCode string) (*domain.KrwAccount, error)

	// FindForeignBalanceForUpdate selects the foreign sub-balance row FOR UPDATE within tx.
	FindForeignBalanceForUpdate(ctx context.Context, tx pgx.Tx, parentAcctNo, currencyCode string) (*domain.ForeignBalance, error)
}

// AccountWriter defines the balance mutations. Only the exchange engine,
// holding the corresponding row locks, may call these.
type AccountWriter interface {
	// UpdateKrwBalanceInTx writes the new KRW balance within tx.
	UpdateKrwBalanceInTx(ctx context.Context, tx pgx.Tx, acctNo string, newBalance int64) error

	// UpdateForeignBalanceInTx writes the new foreign sub-balance within tx.
	UpdateForeignBalanceInTx(ctx context.Context, tx pgx.Tx, balanceNo string, newBalance int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountLockSupport
	AccountWriter
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
