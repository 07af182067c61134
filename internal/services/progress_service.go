package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/scribe-be/internal/models"
)

// ProgressServiceProvider defines the interface for progress services.
type ProgressServiceProvider interface {
	GetProgress(ctx context.Context, userID string) (*models.Progress, error)
	AppendProgress(ctx context.Context, userID, label string, value *float64) error
}

// ProgressService tracks a labelled series of data points per user.
type ProgressService struct {
	db *sql.DB
}

// NewProgressService creates a new ProgressService.
func NewProgressService(db *sql.DB) *ProgressService {
	return &ProgressService{db: db}
}

// GetProgress returns the user's series, or nil when nothing was recorded yet.
func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*models.Progress, error) {
	var labelsJSON, pointsJSON string
	row := s.db.QueryRowContext(ctx, "SELECT labels_json, data_points_json FROM progress WHERE user_id = ?", userID)
	if err := row.Scan(&labelsJSON, &pointsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p := &models.Progress{UserID: userID}
	if err := json.Unmarshal([]byte(labelsJSON), &p.Labels); err != nil {
		return nil, fmt.Errorf("decode progress labels for user %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(pointsJSON), &p.DataPoints); err != nil {
		return nil, fmt.Errorf("decode progress data points for user %s: %w", userID, err)
	}
	if len(p.Labels) != len(p.DataPoints) {
		return nil, fmt.Errorf("progress for user %s has %d labels but %d data points", userID, len(p.Labels), len(p.DataPoints))
	}
	return p, nil
}

// AppendProgress adds one labelled data point, creating the series on first use.
// Both arrays are extended by the same statement so they never diverge.
func (s *ProgressService) AppendProgress(ctx context.Context, userID, label string, value *float64) error {
	if strings.TrimSpace(label) == "" || value == nil {
		return ErrMissingField
	}

	const query = `
		INSERT INTO progress (user_id, labels_json, data_points_json)
		VALUES (?, json_array(?), json_array(?))
		ON CONFLICT (user_id) DO UPDATE SET
			labels_json = json_insert(progress.labels_json, '$[#]', ?),
			data_points_json = json_insert(progress.data_points_json, '$[#]', ?),
			updated_at = CURRENT_TIMESTAMP`
	_, err := s.db.ExecContext(ctx, query, userID, label, *value, label, *value)
	if err != nil {
		return fmt.Errorf("append progress for user %s: %w", userID, err)
	}
	return nil
}
