package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/utils"
)

const profileColumns = `user_id, display_name, wake_time, sleep_time, diet_type, meals_per_day,
	allergies, processed_food_frequency, sleep_duration, sleep_quality, health_conditions,
	fitness_goals, relaxation_methods, stress_frequency, eco_habits, eco_interest_level,
	current_day, total_points, challenge_start_date, onboarding_completed`

// encodeSet stores a string set as a JSON array.
func encodeSet(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSet(s string) ([]string, error) {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	var (
		p                                                   models.Profile
		allergies, conditions, goals, relaxation, ecoHabits string
		onboarded                                           int
	)
	err := s.db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE user_id = ?", userID).Scan(
		&p.UserID, &p.DisplayName, &p.WakeTime, &p.SleepTime, &p.DietType, &p.MealsPerDay,
		&allergies, &p.ProcessedFoodFrequency, &p.SleepDuration, &p.SleepQuality, &conditions,
		&goals, &relaxation, &p.StressFrequency, &ecoHabits, &p.EcoInterestLevel,
		&p.CurrentDay, &p.TotalPoints, &p.ChallengeStartDate, &onboarded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, err
	}
	p.OnboardingCompleted = onboarded != 0

	for _, f := range []struct {
		src string
		dst *[]string
	}{
		{allergies, &p.Allergies},
		{conditions, &p.HealthConditions},
		{goals, &p.FitnessGoals},
		{relaxation, &p.RelaxationMethods},
		{ecoHabits, &p.EcoHabits},
	} {
		v, err := decodeSet(f.src)
		if err != nil {
			return models.Profile{}, fmt.Errorf("failed to decode profile %s: %w", userID, err)
		}
		*f.dst = v
	}

	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	sets := make([]string, 5)
	for i, v := range [][]string{p.Allergies, p.HealthConditions, p.FitnessGoals, p.RelaxationMethods, p.EcoHabits} {
		enc, err := encodeSet(v)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		sets[i] = enc
	}

	onboarded := 0
	if p.OnboardingCompleted {
		onboarded = 1
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO profiles (`+profileColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.DisplayName, p.WakeTime, p.SleepTime, p.DietType, p.MealsPerDay,
		sets[0], p.ProcessedFoodFrequency, p.SleepDuration, p.SleepQuality, sets[1],
		sets[2], sets[3], p.StressFrequency, sets[4], p.EcoInterestLevel,
		p.CurrentDay, p.TotalPoints, p.ChallengeStartDate, onboarded,
		utils.FormatTimestamp(time.Now()),
	)
	return err
}

func (s *Store) UpdateProfile(userID string, patch models.ProfilePatch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE profiles SET
			current_day = COALESCE(?, current_day),
			total_points = COALESCE(?, total_points),
			updated_at = ?
		WHERE user_id = ?`,
		nullableInt(patch.CurrentDay), nullableInt(patch.TotalPoints), utils.FormatTimestamp(time.Now()), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}

	return tx.Commit()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
