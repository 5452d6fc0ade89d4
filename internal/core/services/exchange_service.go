package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haebit-bank/fx-backend/internal/apperrors"
	"github.com/haebit-bank/fx-backend/internal/core/domain"
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/dto"
	"github.com/haebit-bank/fx-backend/internal/middleware"
)

var (
	ErrTermsNotAgreed    = errors.New("exchange terms have not been agreed")
	ErrInsufficientFunds = errors.New("insufficient balance for requested amount")
	ErrInvalidDirection  = errors.New("exchange direction must be BUY or SELL")
	ErrRateNotFound      = errors.New("no published rate for currency")
)

const (
	memoWithdrawal = "FX exchange withdrawal"
	memoDeposit    = "FX exchange deposit"
)

// exchangeService is the exchange transaction engine. It owns the only write
// path to account balances: every mutation happens under row locks taken in a
// fixed order (KRW account first, then the foreign sub-balance) inside one
// database transaction together with the ledger and outbox writes.
type exchangeService struct {
	accountRepo      portsrepo.AccountRepositoryWithTx
	rateRepo         portsrepo.RateRepository
	ledgerRepo       portsrepo.LedgerRepositoryFacade
	termsRepo        portsrepo.TermsRepository
	outboxRepo       portsrepo.OutboxRepository
	customerRepo     portsrepo.CustomerRepository
	replicationTopic string
}

// NewExchangeService creates a new ExchangeService.
func NewExchangeService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	rateRepo portsrepo.RateRepository,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	termsRepo portsrepo.TermsRepository,
	outboxRepo portsrepo.OutboxRepository,
	customerRepo portsrepo.CustomerRepository,
	replicationTopic string,
) portssvc.ExchangeSvcFacade {
	return &exchangeService{
		accountRepo:      accountRepo,
		rateRepo:         rateRepo,
		ledgerRepo:       ledgerRepo,
		termsRepo:        termsRepo,
		outboxRepo:       outboxRepo,
		customerRepo:     customerRepo,
		replicationTopic: replicationTopic,
	}
}

// Ensure exchangeService implements the facade.
var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

// toDomainRequest validates the inbound DTO and maps it to the domain request.
func toDomainRequest(req dto.ExchangeRequest) (domain.ExchangeRequest, error) {
	direction := domain.Direction(req.Direction)
	if direction != domain.Buy && direction != domain.Sell {
		return domain.ExchangeRequest{}, fmt.Errorf("%w: got %q", ErrInvalidDirection, req.Direction)
	}

	out := domain.ExchangeRequest{
		Direction:     direction,
		CurrencyCode:  normalizeCurrency(req.ForeignCurrency),
		HomeAmount:    req.HomeAmount,
		ForeignAmount: req.ForeignAmount,
	}
	if out.Amount() <= 0 {
		return domain.ExchangeRequest{}, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrValidation)
	}
	return out, nil
}

// convertToForeign applies the published rate for a BUY, truncating the
// fractional remainder toward zero. The remainder is not credited anywhere.
func convertToForeign(homeAmount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(homeAmount).Div(rate).Floor().IntPart()
}

// convertToHome applies the published rate for a SELL, truncating toward zero.
func convertToHome(foreignAmount int64, rate decimal.Decimal) int64 {
	return rate.Mul(decimal.NewFromInt(foreignAmount)).Floor().IntPart()
}

// Exchange performs one atomic conversion for the customer.
// Implements portssvc.ExchangeSvcFacade.
func (s *exchangeService) Exchange(ctx context.Context, custCode string, dtoReq dto.ExchangeRequest) (*domain.ExchangeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	req, err := toDomainRequest(dtoReq)
	if err != nil {
		return nil, err
	}

	// Fast-fail terms check before any rate lookup or lock attempt.
	agreed, err := s.termsRepo.HasAgreed(ctx, custCode)
	if err != nil {
		logger.Error("Failed to check terms agreement", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check terms agreement: %w", err)
	}
	if !agreed {
		return nil, ErrTermsNotAgreed
	}

	// The rate is always resolved for the foreign leg: the destination
	// currency for BUY, the source currency for SELL.
	rate, err := s.rateRepo.FindLatestRate(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRateNotFound, req.CurrencyCode)
		}
		logger.Error("Failed to resolve latest rate", slog.String("currency", req.CurrencyCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve latest rate: %w", err)
	}

	custName, err := s.customerRepo.FindNameByCustCode(ctx, custCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer %s: %w", custCode, err)
	}

	// The foreign parent account number is needed for the ledger legs; it is
	// never mutated, so no lock is taken on it.
	frgnAcct, err := s.accountRepo.FindForeignAccountByCustomer(ctx, custCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find foreign account: %w", err)
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin exchange transaction: %w", err)
	}
	// Ignored if the transaction commits successfully.
	defer s.accountRepo.Rollback(ctx, tx)

	// Re-check terms inside the transaction. Agreement revoked between the
	// pre-flight check and this point must still abort the exchange.
	agreed, err = s.termsRepo.HasAgreedInTx(ctx, tx, custCode)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check terms agreement: %w", err)
	}
	if !agreed {
		return nil, ErrTermsNotAgreed
	}

	// Lock order invariant: KRW account row first, foreign sub-balance second.
	krwAcct, err := s.accountRepo.FindKrwAccountForUpdate(ctx, tx, custCode)
	if err != nil {
		return nil, fmt.Errorf("failed to lock KRW account: %w", err)
	}

	frgnBalance, err := s.accountRepo.FindForeignBalanceForUpdate(ctx, tx, frgnAcct.AcctNo, req.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to lock foreign balance: %w", err)
	}

	now := time.Now().UTC()
	var result domain.ExchangeResult
	var entries []domain.LedgerEntry

	switch req.Direction {
	case domain.Buy:
		homeAmount := req.HomeAmount
		if krwAcct.Balance < homeAmount {
			return nil, fmt.Errorf("%w: KRW balance %d, requested %d", ErrInsufficientFunds, krwAcct.Balance, homeAmount)
		}
		foreignAmount := convertToForeign(homeAmount, rate.BaseRate)

		if err := s.accountRepo.UpdateKrwBalanceInTx(ctx, tx, krwAcct.AcctNo, krwAcct.Balance-homeAmount); err != nil {
			return nil, fmt.Errorf("failed to update KRW balance: %w", err)
		}
		if err := s.accountRepo.UpdateForeignBalanceInTx(ctx, tx, frgnBalance.BalanceNo, frgnBalance.Balance+foreignAmount); err != nil {
			return nil, fmt.Errorf("failed to update foreign balance: %w", err)
		}

		// Debit leg first, then credit, for both the ledger and replication.
		entries = []domain.LedgerEntry{
			{
				EntryID:            uuid.NewString(),
				AcctNo:             krwAcct.AcctNo,
				CounterpartyAcctNo: frgnAcct.AcctNo,
				LegType:            domain.Debit,
				Amount:             homeAmount,
				Memo:               memoWithdrawal,
				OccurredAt:         now,
			},
			{
				EntryID:            uuid.NewString(),
				AcctNo:             frgnAcct.AcctNo,
				CounterpartyAcctNo: krwAcct.AcctNo,
				LegType:            domain.Credit,
				Amount:             foreignAmount,
				Memo:               memoDeposit,
				OccurredAt:         now,
			},
		}

		result = domain.ExchangeResult{
			ExchangeID:    uuid.NewString(),
			CustCode:      custCode,
			Direction:     domain.Buy,
			CurrencyCode:  req.CurrencyCode,
			HomeAmount:    homeAmount,
			ForeignAmount: foreignAmount,
			AppliedRate:   rate.BaseRate,
			KrwAcctNo:     krwAcct.AcctNo,
			ForeignAcctNo: frgnAcct.AcctNo,
			RequestedAt:   now,
		}

	case domain.Sell:
		foreignAmount := req.ForeignAmount
		if frgnBalance.Balance < foreignAmount {
			return nil, fmt.Errorf("%w: %s balance %d, requested %d", ErrInsufficientFunds, req.CurrencyCode, frgnBalance.Balance, foreignAmount)
		}
		homeAmount := convertToHome(foreignAmount, rate.BaseRate)

		if err := s.accountRepo.UpdateForeignBalanceInTx(ctx, tx, frgnBalance.BalanceNo, frgnBalance.Balance-foreignAmount); err != nil {
			return nil, fmt.Errorf("failed to update foreign balance: %w", err)
		}
		if err := s.accountRepo.UpdateKrwBalanceInTx(ctx, tx, krwAcct.AcctNo, krwAcct.Balance+homeAmount); err != nil {
			return nil, fmt.Errorf("failed to update KRW balance: %w", err)
		}

		entries = []domain.LedgerEntry{
			{
				EntryID:            uuid.NewString(),
				AcctNo:             frgnAcct.AcctNo,
				CounterpartyAcctNo: krwAcct.AcctNo,
				LegType:            domain.Debit,
				Amount:             foreignAmount,
				Memo:               memoWithdrawal,
				OccurredAt:         now,
			},
			{
				EntryID:            uuid.NewString(),
				AcctNo:             krwAcct.AcctNo,
				CounterpartyAcctNo: frgnAcct.AcctNo,
				LegType:            domain.Credit,
				Amount:             homeAmount,
				Memo:               memoDeposit,
				OccurredAt:         now,
			},
		}

		result = domain.ExchangeResult{
			ExchangeID:    uuid.NewString(),
			CustCode:      custCode,
			Direction:     domain.Sell,
			CurrencyCode:  req.CurrencyCode,
			HomeAmount:    homeAmount,
			ForeignAmount: foreignAmount,
			AppliedRate:   rate.BaseRate,
			KrwAcctNo:     krwAcct.AcctNo,
			ForeignAcctNo: frgnAcct.AcctNo,
			RequestedAt:   now,
		}
	}

	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return nil, fmt.Errorf("failed to record ledger legs: %w", err)
	}

	// Stage replication events in the same transaction as the balance and
	// ledger writes. The relay delivers them to the queue after commit, so a
	// broker outage can delay replication but never lose a committed exchange.
	messages, err := s.buildOutboxMessages(result, entries, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build replication events: %w", err)
	}
	if err := s.outboxRepo.EnqueueInTx(ctx, tx, messages); err != nil {
		return nil, fmt.Errorf("failed to stage replication events: %w", err)
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit exchange transaction: %w", err)
	}

	logger.Info("Exchange committed",
		slog.String("exchange_id", result.ExchangeID),
		slog.String("direction", string(result.Direction)),
		slog.String("currency", result.CurrencyCode),
		slog.Int64("home_amount", result.HomeAmount),
		slog.Int64("foreign_amount", result.ForeignAmount),
		slog.String("customer", custName),
	)
	return &result, nil
}

// buildOutboxMessages serializes one TRANSFER event per ledger leg (in leg
// order) plus one EXCHANGE summary for the completed conversion.
func (s *exchangeService) buildOutboxMessages(result domain.ExchangeResult, entries []domain.LedgerEntry, now time.Time) ([]domain.OutboxMessage, error) {
	events := make([]domain.ReplicationEvent, 0, len(entries)+1)
	for _, e := range entries {
		events = append(events, domain.ReplicationEvent{
			EventType:          domain.EventTransfer,
			AcctNo:             e.AcctNo,
			CounterpartyAcctNo: e.CounterpartyAcctNo,
			Amount:             e.Amount,
			LegType:            e.LegType,
			Memo:               e.Memo,
			Timestamp:          e.OccurredAt,
		})
	}
	events = append(events, domain.ReplicationEvent{
		EventType:          domain.EventExchange,
		AcctNo:             result.KrwAcctNo,
		CounterpartyAcctNo: result.ForeignAcctNo,
		Amount:             result.HomeAmount,
		Memo:               fmt.Sprintf("%s %s %d @ %s", result.Direction, result.CurrencyCode, result.ForeignAmount, result.AppliedRate.String()),
		Timestamp:          result.RequestedAt,
	})

	messages := make([]domain.OutboxMessage, len(events))
	for i, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal replication event: %w", err)
		}
		messages[i] = domain.OutboxMessage{
			MessageID:  uuid.NewString(),
			MessageKey: ev.AcctNo,
			Topic:      s.replicationTopic,
			Payload:    payload,
			Status:     domain.OutboxPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return messages, nil
}

// GetExchangeAccounts returns both balances without taking locks.
// A missing foreign sub-balance row reads as zero, matching the behavior of
// a customer who has never held that currency.
func (s *exchangeService) GetExchangeAccounts(ctx context.Context, custCode string, currencyCode string) (*dto.BalanceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currencyCode = normalizeCurrency(currencyCode)

	resp := &dto.BalanceResponse{}

	krwAcct, err := s.accountRepo.FindKrwAccountByCustomer(ctx, custCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to read KRW account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read KRW account: %w", err)
	}
	if krwAcct != nil {
		resp.KrwBalance = krwAcct.Balance
		resp.KrwAcctNo = krwAcct.AcctNo
	}

	frgnAcct, err := s.accountRepo.FindForeignAccountByCustomer(ctx, custCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to read foreign account: %w", err)
	}
	resp.FrgnAcctNo = frgnAcct.AcctNo

	balance, err := s.accountRepo.FindForeignBalance(ctx, frgnAcct.AcctNo, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to read foreign balance: %w", err)
	}
	resp.FrgnBalance = balance.Balance

	return resp, nil
}

// ListHistory retrieves the customer's transfer history, newest first.
func (s *exchangeService) ListHistory(ctx context.Context, custCode string, params dto.ListHistoryParams) (*dto.ListHistoryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	krwAcct, err := s.accountRepo.FindKrwAccountByCustomer(ctx, custCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find KRW account for history: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, krwAcct.AcctNo, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transfer history: %w", err)
	}

	return &dto.ListHistoryResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
