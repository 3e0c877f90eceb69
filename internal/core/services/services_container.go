package services

import (
	"time"

	portsrepo "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/repositories"
	portssvc "github.com/api-diengcyber/transaksi-sub000/internal/core/ports/services"
	"github.com/api-diengcyber/transaksi-sub000/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// locker may be nil, in which case store level operations run unlocked.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker portssvc.Locker) *portssvc.ServiceContainer {
	loc := cfg.Location()

	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithJournalConfigRepository(repos.JournalConfigRepo),
		WithLocker(locker),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		WithJournalLocation(loc),
		WithCodeAttempts(cfg.JournalCodeAttempts),
		WithJournalClock(func() time.Time { return time.Now().In(loc) }),
	)

	container.JournalConfig = NewJournalConfigService(repos.JournalConfigRepo, repos.AccountRepo, repos.JournalRepo)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.JournalRepo,
		repos.JournalConfigRepo,
		WithReportingLocation(loc),
	)

	return container
}
