package store

import (
	"brewmeet.app/server/core/db"
)

type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Events() EventStore {
	return newEventStore(s.q)
}

func (s *Stores) Venues() VenueStore {
	return newVenueStore(s.q)
}

func (s *Stores) VenueMappings() VenueMappingStore {
	return newVenueMappingStore(s.q)
}

func (s *Stores) Organizers() OrganizerStore {
	return newOrganizerStore(s.q)
}

func (s *Stores) ImportConflicts() ImportConflictStore {
	return newImportConflictStore(s.q)
}

func (s *Stores) ImportJobs() ImportJobStore {
	return newImportJobStore(s.q)
}
