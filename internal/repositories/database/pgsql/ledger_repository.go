package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
	"github.com/haebit-bank/fx-backend/internal/utils/pagination"
)

// PgxLedgerRepository implements the ledger repository port using pgxpool.
type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new PgxLedgerRepository.
func NewPgxLedgerRepository(db *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:            m.EntryID,
		AcctNo:             m.AcctNo,
		CounterpartyAcctNo: m.CounterpartyAcctNo,
		LegType:            domain.LegType(m.LegType),
		Amount:             m.Amount,
		Memo:               m.Memo,
		OccurredAt:         m.OccurredAt,
	}
}

// SaveEntriesInTx appends ledger legs inside the caller's transaction,
// preserving slice order so the debit leg is written before the credit leg.
func (r *PgxLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO ledger_entries (
				entry_id, acct_no, counterparty_acct_no, leg_type, amount, memo, occurred_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.EntryID, e.AcctNo, e.CounterpartyAcctNo, string(e.LegType), e.Amount, e.Memo, e.OccurredAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert ledger entry", err)
		}
	}
	return nil
}

// ListEntriesByAccount pages through an account's ledger entries newest
// first, using a keyset cursor over (occurred_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, acctNo string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	const baseQuery = `
		SELECT entry_id, acct_no, counterparty_acct_no, leg_type, amount, memo, occurred_at
		FROM ledger_entries
		WHERE acct_no = $1
	`

	// Fetch one extra row to decide whether a next page exists.
	query := baseQuery + ` ORDER BY occurred_at DESC, entry_id DESC LIMIT $2;`
	args := []any{acctNo, limit + 1}

	if nextToken != nil && *nextToken != "" {
		occurredAt, entryID, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token: " + err.Error())
		}
		query = baseQuery + ` AND (occurred_at, entry_id) < ($2, $3) ORDER BY occurred_at DESC, entry_id DESC LIMIT $4;`
		args = []any{acctNo, occurredAt, entryID, limit + 1}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list ledger entries", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(&m.EntryID, &m.AcctNo, &m.CounterpartyAcctNo, &m.LegType, &m.Amount, &m.Memo, &m.OccurredAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate ledger entries", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeEntryToken(last.OccurredAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}
