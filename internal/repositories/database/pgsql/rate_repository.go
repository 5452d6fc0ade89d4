package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
)

// PgxRateRepository implements the rate repository port using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.RateRepository = (*PgxRateRepository)(nil)

func toDomainRate(m models.ExchangeRate) domain.Rate {
	return domain.Rate{
		CurrencyCode: m.CurrencyCode,
		BaseRate:     m.BaseRate,
		StdDate:      m.StdDate,
	}
}

// FindLatestRate retrieves the newest published rate for one currency.
func (r *PgxRateRepository) FindLatestRate(ctx context.Context, currencyCode string) (*domain.Rate, error) {
	query := `
		SELECT currency_code, base_rate, std_date
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY std_date DESC
		LIMIT 1;
	`

	var m models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(&m.CurrencyCode, &m.BaseRate, &m.StdDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate published for currency " + currencyCode)
		}
		return nil, apperrors.NewAppError(500, "failed to find latest rate", err)
	}

	rate := toDomainRate(m)
	return &rate, nil
}

// ListLatestRates retrieves the newest rate for every published currency.
func (r *PgxRateRepository) ListLatestRates(ctx context.Context) ([]domain.Rate, error) {
	query := `
		SELECT DISTINCT ON (currency_code) currency_code, base_rate, std_date
		FROM exchange_rates
		ORDER BY currency_code, std_date DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list latest rates", err)
	}
	defer rows.Close()

	var rates []domain.Rate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.CurrencyCode, &m.BaseRate, &m.StdDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate", err)
		}
		rates = append(rates, toDomainRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate rates", err)
	}
	return rates, nil
}

// ListRateHistory retrieves past rates for one currency, newest first.
func (r *PgxRateRepository) ListRateHistory(ctx context.Context, currencyCode string, limit int) ([]domain.Rate, error) {
	query := `
		SELECT currency_code, base_rate, std_date
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY std_date DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, currencyCode, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list rate history", err)
	}
	defer rows.Close()

	var rates []domain.Rate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.CurrencyCode, &m.BaseRate, &m.StdDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate", err)
		}
		rates = append(rates, toDomainRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate rate history", err)
	}
	return rates, nil
}
