package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

const profileColumns = `user_id, display_name, wake_time, sleep_time, diet_type, meals_per_day,
	allergies, processed_food_frequency, sleep_duration, sleep_quality, health_conditions,
	fitness_goals, relaxation_methods, stress_frequency, eco_habits, eco_interest_level,
	current_day, total_points, challenge_start_date, onboarding_completed`

// textArray maps a nil set to an empty array; the columns are NOT NULL.
func textArray(v []string) any {
	if v == nil {
		v = []string{}
	}
	return pq.Array(v)
}

func emptyToNil(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (s *Store) GetProfile(userID string) (models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE user_id = $1", userID).Scan(
		&p.UserID, &p.DisplayName, &p.WakeTime, &p.SleepTime, &p.DietType, &p.MealsPerDay,
		pq.Array(&p.Allergies), &p.ProcessedFoodFrequency, &p.SleepDuration, &p.SleepQuality, pq.Array(&p.HealthConditions),
		pq.Array(&p.FitnessGoals), pq.Array(&p.RelaxationMethods), &p.StressFrequency, pq.Array(&p.EcoHabits), &p.EcoInterestLevel,
		&p.CurrentDay, &p.TotalPoints, &p.ChallengeStartDate, &p.OnboardingCompleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, err
	}

	p.Allergies = emptyToNil(p.Allergies)
	p.HealthConditions = emptyToNil(p.HealthConditions)
	p.FitnessGoals = emptyToNil(p.FitnessGoals)
	p.RelaxationMethods = emptyToNil(p.RelaxationMethods)
	p.EcoHabits = emptyToNil(p.EcoHabits)
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (`+profileColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			wake_time = EXCLUDED.wake_time,
			sleep_time = EXCLUDED.sleep_time,
			diet_type = EXCLUDED.diet_type,
			meals_per_day = EXCLUDED.meals_per_day,
			allergies = EXCLUDED.allergies,
			processed_food_frequency = EXCLUDED.processed_food_frequency,
			sleep_duration = EXCLUDED.sleep_duration,
			sleep_quality = EXCLUDED.sleep_quality,
			health_conditions = EXCLUDED.health_conditions,
			fitness_goals = EXCLUDED.fitness_goals,
			relaxation_methods = EXCLUDED.relaxation_methods,
			stress_frequency = EXCLUDED.stress_frequency,
			eco_habits = EXCLUDED.eco_habits,
			eco_interest_level = EXCLUDED.eco_interest_level,
			current_day = EXCLUDED.current_day,
			total_points = EXCLUDED.total_points,
			challenge_start_date = EXCLUDED.challenge_start_date,
			onboarding_completed = EXCLUDED.onboarding_completed,
			updated_at = now()`,
		p.UserID, p.DisplayName, p.WakeTime, p.SleepTime, p.DietType, p.MealsPerDay,
		textArray(p.Allergies), p.ProcessedFoodFrequency, p.SleepDuration, p.SleepQuality, textArray(p.HealthConditions),
		textArray(p.FitnessGoals), textArray(p.RelaxationMethods), p.StressFrequency, textArray(p.EcoHabits), p.EcoInterestLevel,
		p.CurrentDay, p.TotalPoints, p.ChallengeStartDate, p.OnboardingCompleted,
	)
	return err
}

func (s *Store) UpdateProfile(userID string, patch models.ProfilePatch) error {
	res, err := s.db.Exec(`
		UPDATE profiles SET
			current_day = COALESCE($1::integer, current_day),
			total_points = COALESCE($2::integer, total_points),
			updated_at = now()
		WHERE user_id = $3`,
		nullableInt(patch.CurrentDay), nullableInt(patch.TotalPoints), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	return nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
