package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
	"github.com/julianstephens/wellpath/internal/utils"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompletion(row rowScanner) (models.CompletionRecord, error) {
	var (
		r           models.CompletionRecord
		completedAt string
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.TaskID, &r.Date, &r.PointsEarned, &completedAt); err != nil {
		return models.CompletionRecord{}, err
	}
	t, err := utils.ParseTimestamp(completedAt)
	if err != nil {
		return models.CompletionRecord{}, fmt.Errorf("invalid completed_at %q: %w", completedAt, err)
	}
	r.CompletedAt = t
	return r, nil
}

func (s *Store) GetCompletionsForDate(userID, date string) ([]models.CompletionRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, task_id, date, points_earned, completed_at
		FROM completions WHERE user_id = ? AND date = ?
		ORDER BY completed_at`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.CompletionRecord{}
	for rows.Next() {
		r, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) GetCompletionDates(userID, since, until string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT date FROM completions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, userID, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (s *Store) RecordCompletion(w models.CompletionWrite) (models.CompletionOutcome, error) {
	rec := w.Record

	tx, err := s.db.Begin()
	if err != nil {
		return models.CompletionOutcome{}, err
	}
	defer tx.Rollback()

	var total int
	if err := tx.QueryRow("SELECT total_points FROM profiles WHERE user_id = ?", rec.UserID).Scan(&total); err != nil {
		if err == sql.ErrNoRows {
			return models.CompletionOutcome{}, fmt.Errorf("profile %s: %w", rec.UserID, storage.ErrNotFound)
		}
		return models.CompletionOutcome{}, err
	}

	res, err := tx.Exec(`
		INSERT INTO completions (id, user_id, task_id, date, points_earned, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, task_id, date) DO NOTHING`,
		rec.ID, rec.UserID, rec.TaskID, rec.Date, rec.PointsEarned, utils.FormatTimestamp(rec.CompletedAt))
	if err != nil {
		return models.CompletionOutcome{}, fmt.Errorf("failed to insert completion: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return models.CompletionOutcome{}, err
	}

	if inserted == 0 {
		existing, err := scanCompletion(tx.QueryRow(`
			SELECT id, user_id, task_id, date, points_earned, completed_at
			FROM completions WHERE user_id = ? AND task_id = ? AND date = ?`,
			rec.UserID, rec.TaskID, rec.Date))
		if err != nil {
			return models.CompletionOutcome{}, fmt.Errorf("failed to load existing completion: %w", err)
		}
		logger.Debug("Completion already recorded", "user", rec.UserID, "task", rec.TaskID, "date", rec.Date)
		return models.CompletionOutcome{Record: existing, TotalPoints: total}, nil
	}

	total += rec.PointsEarned

	awarded := false
	if w.PerfectDayBonus > 0 {
		res, err := tx.Exec(`
			INSERT INTO perfect_days (user_id, date, bonus, awarded_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, date) DO NOTHING`,
			rec.UserID, rec.Date, w.PerfectDayBonus, utils.FormatTimestamp(time.Now()))
		if err != nil {
			return models.CompletionOutcome{}, fmt.Errorf("failed to record perfect day: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return models.CompletionOutcome{}, err
		}
		if n == 1 {
			total += w.PerfectDayBonus
			awarded = true
		}
	}

	if _, err := tx.Exec("UPDATE profiles SET total_points = ?, updated_at = ? WHERE user_id = ?",
		total, utils.FormatTimestamp(time.Now()), rec.UserID); err != nil {
		return models.CompletionOutcome{}, fmt.Errorf("failed to update points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.CompletionOutcome{}, fmt.Errorf("failed to commit completion: %w", err)
	}

	return models.CompletionOutcome{Record: rec, Created: true, PerfectDayAwarded: awarded, TotalPoints: total}, nil
}
