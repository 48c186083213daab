package tracker

import (
	"fmt"

	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

// AdvanceDay moves the user's current day forward by one and returns it.
// Advancing past the last day fails with an InvalidDayIndexError.
func AdvanceDay(store storage.Provider, userID string) (int, error) {
	if userID == "" {
		return 0, &engine.ProfileIncompleteError{Field: "user_id"}
	}

	profile, err := store.GetProfile(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.CurrentDay < 0 {
		return 0, &engine.ProfileIncompleteError{Field: "current_day"}
	}

	next := profile.EffectiveDay() + 1
	if next > constants.ChallengeDays {
		return 0, &engine.InvalidDayIndexError{Day: next}
	}

	if err := store.UpdateProfile(userID, models.ProfilePatch{CurrentDay: &next}); err != nil {
		return 0, fmt.Errorf("failed to advance day: %w", err)
	}
	logger.Info("Advanced challenge day", "user", userID, "day", next)
	return next, nil
}
