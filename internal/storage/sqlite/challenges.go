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

func (s *Store) SaveChallenge(userID string, ch models.Challenge) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}
	_, err = s.db.Exec("INSERT OR REPLACE INTO challenges (user_id, data, created_at) VALUES (?, ?, ?)",
		userID, string(data), utils.FormatTimestamp(time.Now()))
	return err
}

func (s *Store) LoadChallenge(userID string) (models.Challenge, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM challenges WHERE user_id = ?", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Challenge{}, fmt.Errorf("challenge for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Challenge{}, err
	}

	var ch models.Challenge
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return ch, nil
}
