package service

import (
	"time"

	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/wordpress"
)

// ConflictStrategy governs how detected conflicts are reconciled during an
// import run.
type ConflictStrategy string

const (
	// StrategyLocal keeps every local value and only refreshes sync bookkeeping.
	StrategyLocal ConflictStrategy = "local"
	// StrategyWordPress takes the remote value for every conflicted field.
	StrategyWordPress ConflictStrategy = "wordpress"
	// StrategyLatest takes whichever side was modified more recently, per field.
	StrategyLatest ConflictStrategy = "latest"
	// StrategyManual persists conflicts for human review and leaves the event untouched.
	StrategyManual ConflictStrategy = "manual"
)

func (s ConflictStrategy) Valid() bool {
	switch s {
	case StrategyLocal, StrategyWordPress, StrategyLatest, StrategyManual:
		return true
	}
	return false
}

// ResolveConflicts computes the resolved event state for an automatic
// strategy. It is pure: the input event is copied, never mutated, and the
// caller persists the result. The manual strategy never reaches this
// function; the orchestrator persists pending conflict rows instead.
func ResolveConflicts(local model.Event, remote *wordpress.RemoteEvent, conflicts []model.ImportConflict, strategy ConflictStrategy) model.Event {
	resolved := local

	for i := range conflicts {
		c := &conflicts[i]
		switch strategy {
		case StrategyWordPress:
			applyRemoteValue(&resolved, c, remote)
		case StrategyLatest:
			if remoteIsNewer(c) {
				applyRemoteValue(&resolved, c, remote)
			}
		}
	}

	now := time.Now()
	resolved.SyncStatus = model.SyncStatusSynced
	resolved.LastSyncedAt = &now
	resolved.WordPressModifiedAt = wordpress.ParseTimePtr(remote.Modified)

	return resolved
}

// remoteIsNewer reports whether the remote side should win under the latest
// strategy. Missing timestamps on either side keep the local value.
func remoteIsNewer(c *model.ImportConflict) bool {
	if c.LocalModifiedAt == nil || c.WordPressModifiedAt == nil {
		return false
	}
	return c.WordPressModifiedAt.After(*c.LocalModifiedAt)
}

func applyRemoteValue(event *model.Event, c *model.ImportConflict, remote *wordpress.RemoteEvent) {
	switch c.Type {
	case model.ConflictTypeContent:
		event.Theme = remote.Title.Text()
	case model.ConflictTypeDateTime:
		if t, err := wordpress.ParseTime(remote.StartDate); err == nil {
			event.DateTime = t
		}
	case model.ConflictTypeStatus:
		event.Status = MapRemoteStatus(remote.Status)
	}
}
