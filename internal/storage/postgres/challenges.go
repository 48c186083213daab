package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/wellpath/internal/models"
	"github.com/julianstephens/wellpath/internal/storage"
)

func (s *Store) SaveChallenge(userID string, ch models.Challenge) error {
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO challenges (user_id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, created_at = now()`,
		userID, string(data))
	return err
}

func (s *Store) LoadChallenge(userID string) (models.Challenge, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM challenges WHERE user_id = $1", userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Challenge{}, fmt.Errorf("challenge for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Challenge{}, err
	}

	var ch models.Challenge
	if err := json.Unmarshal(data, &ch); err != nil {
		return models.Challenge{}, fmt.Errorf("failed to decode challenge: %w", err)
	}
	return ch, nil
}
