package service

import (
	"brewmeet.app/server/core/config"
	"brewmeet.app/server/internal/store"
)

type Services struct {
	stores     *store.Stores
	txRunner   TxRunner
	wp         WordPressClient
	wpCfg      config.WordPressConfig
	publishers []Publisher
}

func NewServices(stores *store.Stores, txRunner TxRunner, wp WordPressClient, wpCfg config.WordPressConfig, publishers ...Publisher) *Services {
	return &Services{
		stores:     stores,
		txRunner:   txRunner,
		wp:         wp,
		wpCfg:      wpCfg,
		publishers: publishers,
	}
}

func (s *Services) Events() EventService {
	return NewEventService(s.stores.Events(), s.stores.Organizers())
}

func (s *Services) Venues() VenueService {
	return NewVenueService(s.stores.Venues())
}

func (s *Services) Organizers() OrganizerService {
	return NewOrganizerService(s.stores.Organizers(), s.txRunner)
}

func (s *Services) Import() ImportService {
	return NewImportService(s.wp, s.stores, s.txRunner, s.wpCfg.FallbackVenueID)
}

func (s *Services) Publish() PublishService {
	return NewPublishService(s.stores.Events(), s.publishers...)
}
