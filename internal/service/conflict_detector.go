package service

import (
	"brewmeet.app/server/internal/model"
	"brewmeet.app/server/internal/wordpress"
)

// DetectConflicts compares a local event against its remote counterpart and
// returns one conflict per disagreeing field. It is a pure function; rows are
// persisted by the orchestrator, and only under the manual strategy.
//
// Only theme, date/time, and status are compared. Venue and image conflict
// types exist in the taxonomy but are not yet detected.
func DetectConflicts(local *model.Event, remote *wordpress.RemoteEvent) []model.ImportConflict {
	var conflicts []model.ImportConflict

	localModified := local.UpdatedAt
	remoteModified := wordpress.ParseTimePtr(remote.Modified)

	newConflict := func(ct model.ConflictType, localValue, remoteValue string) model.ImportConflict {
		return model.ImportConflict{
			EventID:             local.ID,
			WordPressID:         remote.ID,
			Type:                ct,
			LocalValue:          localValue,
			WordPressValue:      remoteValue,
			LocalModifiedAt:     &localModified,
			WordPressModifiedAt: remoteModified,
			Resolution:          model.ConflictResolutionPending,
		}
	}

	remoteTitle := remote.Title.Text()
	if local.Theme != remoteTitle {
		conflicts = append(conflicts, newConflict(model.ConflictTypeContent, local.Theme, remoteTitle))
	}

	if remoteStart, err := wordpress.ParseTime(remote.StartDate); err == nil {
		if !local.DateTime.Equal(remoteStart) {
			conflicts = append(conflicts, newConflict(model.ConflictTypeDateTime,
				local.DateTime.Format(wordpress.TimeLayout),
				remoteStart.Format(wordpress.TimeLayout)))
		}
	}

	remoteStatus := MapRemoteStatus(remote.Status)
	if local.Status != remoteStatus {
		conflicts = append(conflicts, newConflict(model.ConflictTypeStatus,
			string(local.Status), string(remoteStatus)))
	}

	return conflicts
}

// MapRemoteStatus translates a WordPress post status into a local event
// status. Published posts map to published; everything else is a draft.
func MapRemoteStatus(remoteStatus string) model.EventStatus {
	if remoteStatus == "publish" {
		return model.EventStatusPublished
	}
	return model.EventStatusDraft
}
