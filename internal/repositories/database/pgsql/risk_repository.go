package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	"github.com/haebit-bank/fx-backend/internal/models"
)

// PgxRiskRepository implements the risk repository port using pgxpool.
type PgxRiskRepository struct {
	BaseRepository
}

// NewPgxRiskRepository creates a new PgxRiskRepository.
func NewPgxRiskRepository(db *pgxpool.Pool) *PgxRiskRepository {
	return &PgxRiskRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.RiskRepository = (*PgxRiskRepository)(nil)

// FindRisk retrieves one volatility snapshot. A nil date means the latest.
func (r *PgxRiskRepository) FindRisk(ctx context.Context, currencyCode string, date *time.Time) (*domain.RiskInfo, error) {
	query := `
		SELECT currency_code, std_date, current_volatility, forecast_volatility
		FROM risk_volatility
		WHERE currency_code = $1
		ORDER BY std_date DESC
		LIMIT 1;
	`
	args := []any{currencyCode}

	if date != nil {
		query = `
			SELECT currency_code, std_date, current_volatility, forecast_volatility
			FROM risk_volatility
			WHERE currency_code = $1 AND std_date = $2;
		`
		args = append(args, *date)
	}

	var m models.RiskVolatility
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&m.CurrencyCode, &m.StdDate, &m.CurrentVolatility, &m.ForecastVolatility)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no volatility data for currency " + currencyCode)
		}
		return nil, apperrors.NewAppError(500, "failed to find volatility data", err)
	}

	return &domain.RiskInfo{
		CurrencyCode:       m.CurrencyCode,
		StdDate:            m.StdDate,
		CurrentVolatility:  m.CurrentVolatility,
		ForecastVolatility: m.ForecastVolatility,
	}, nil
}
