package repositories

import (
	"context"

	"github.com/haebit-bank/fx-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerWriter appends transfer-history rows. SaveEntriesInTx has no
// atomicity of its own; it always runs inside the caller's exchange
// transaction.
type LedgerWriter interface {
	// SaveEntriesInTx inserts the given legs within tx, preserving slice order.
	SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error
}

// LedgerReader reads committed history. Never blocks on exchange locks.
type LedgerReader interface {
	// ListEntriesByAccount retrieves entries for an account using token-based
	// pagination, newest first. Returns the entries, a token for the next
	// page, and an error.
	ListEntriesByAccount(ctx context.Context, acctNo string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerRepositoryFacade combines ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerWriter
	LedgerReader
}
