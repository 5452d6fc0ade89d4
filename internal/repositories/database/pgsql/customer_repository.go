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

// PgxCustomerRepository implements the customer repository port using pgxpool.
type PgxCustomerRepository struct {
	BaseRepository
}

// NewPgxCustomerRepository creates a new PgxCustomerRepository.
func NewPgxCustomerRepository(db *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustCode:     m.CustCode,
		CustID:       m.CustID,
		Name:         m.Name,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		DeviceID:     m.DeviceID,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FindByCustID retrieves a customer by login identifier.
func (r *PgxCustomerRepository) FindByCustID(ctx context.Context, custID string) (*domain.Customer, error) {
	query := `
		SELECT cust_code, cust_id, name, phone, password_hash, device_id, last_login_at
		FROM customers
		WHERE cust_id = $1;
	`

	var m models.Customer
	err := r.Pool.QueryRow(ctx, query, custID).Scan(
		&m.CustCode, &m.CustID, &m.Name, &m.Phone, &m.PasswordHash, &m.DeviceID, &m.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find customer", err)
	}

	cust := toDomainCustomer(m)
	return &cust, nil
}

// FindNameByCustCode retrieves the customer's display name.
func (r *PgxCustomerRepository) FindNameByCustCode(ctx context.Context, custCode string) (string, error) {
	var name string
	err := r.Pool.QueryRow(ctx, `SELECT name FROM customers WHERE cust_code = $1`, custCode).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("customer not found: " + custCode)
		}
		return "", apperrors.NewAppError(500, "failed to find customer name", err)
	}
	return name, nil
}

// SaveLastLogin records a successful login timestamp.
func (r *PgxCustomerRepository) SaveLastLogin(ctx context.Context, custCode string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE customers SET last_login_at = $1 WHERE cust_code = $2`, at, custCode)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save last login", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found: " + custCode)
	}
	return nil
}

// UpdateDeviceID rebinds the customer's registered device.
func (r *PgxCustomerRepository) UpdateDeviceID(ctx context.Context, custCode string, deviceID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE customers SET device_id = $1 WHERE cust_code = $2`, deviceID, custCode)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update device id", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found: " + custCode)
	}
	return nil
}
