package services

import (
	portsrepo "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/repositories"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Registry first; campaign lifecycle authorization depends on it.
	container.Registry = NewRegistryService(repos.RegistryRepo)

	container.Campaign = NewCampaignService(repos.CampaignRepo, container.Registry, cfg)
	container.Pledge = NewPledgeService(repos.PledgeRepo, repos.CampaignRepo, cfg)
	container.Settlement = NewSettlementService(repos.SettlementRepo, repos.RegistryRepo)
	container.Event = NewEventService(repos.EventRepo)
	container.Token = NewTokenService(cfg)

	return container
}
