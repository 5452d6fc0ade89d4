package services

import (
	portsrepo "github.com/haebit-bank/fx-backend/internal/core/ports/repositories"
	portssvc "github.com/haebit-bank/fx-backend/internal/core/ports/services"
	"github.com/haebit-bank/fx-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, codeStore portsrepo.CodeStore, smsSender portssvc.SmsSender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Exchange = NewExchangeService(
		repos.AccountRepo,
		repos.RateRepo,
		repos.LedgerRepo,
		repos.TermsRepo,
		repos.OutboxRepo,
		repos.CustomerRepo,
		cfg.ReplicationTopic,
	)

	container.Terms = NewTermsService(repos.TermsRepo)
	container.Rate = NewRateService(repos.RateRepo)
	container.Risk = NewRiskService(repos.RiskRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	container.Verification = NewVerificationService(repos.CustomerRepo, codeStore, smsSender, cfg.OtpTTL)

	return container
}
