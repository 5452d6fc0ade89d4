package pgsql

import (
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  NewPgxAccountRepository(dbPool),
		RateRepo:     NewPgxRateRepository(dbPool),
		LedgerRepo:   NewPgxLedgerRepository(dbPool),
		TermsRepo:    NewPgxTermsRepository(dbPool),
		OutboxRepo:   NewPgxOutboxRepository(dbPool),
		CustomerRepo: NewPgxCustomerRepository(dbPool),
		RiskRepo:     NewPgxRiskRepository(dbPool),
	}
}
