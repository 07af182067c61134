package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/scribe-be/internal/database"
	"github.com/isdelr/scribe-be/internal/models"
)

// ChallengeServiceProvider defines the interface for challenge services.
type ChallengeServiceProvider interface {
	CreateChallenge(ctx context.Context, challenge models.Challenge) (models.Challenge, error)
	GetChallengeByID(ctx context.Context, id string) (models.Challenge, error)
	SearchChallenges(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error)
}

// ChallengeService provides business logic for the challenge catalog.
type ChallengeService struct {
	db  *sql.DB
	now func() time.Time
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(db *sql.DB) *ChallengeService {
	return &ChallengeService{db: db, now: time.Now}
}

const challengeColumns = "id, title, tags_json, difficulty, essay_prompt, created_at"

// scanChallenge is a helper to scan a challenge from a row or rows object.
func scanChallenge(scanner interface{ Scan(...interface{}) error }) (models.Challenge, error) {
	var c models.Challenge
	if err := scanner.Scan(&c.ID, &c.Title, &c.TagsJSON, &c.Difficulty, &c.EssayPrompt, &c.CreatedAt); err != nil {
		return c, err
	}
	if err := c.PrepareForAPI(); err != nil {
		return c, fmt.Errorf("decode tags of challenge %s: %w", c.ID, err)
	}
	return c, nil
}

// CleanTags trims every tag and drops the empty ones.
func CleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

// CreateChallenge validates and stores a new challenge.
func (s *ChallengeService) CreateChallenge(ctx context.Context, challenge models.Challenge) (models.Challenge, error) {
	challenge.Title = strings.TrimSpace(challenge.Title)
	challenge.Difficulty = strings.TrimSpace(challenge.Difficulty)
	challenge.Tags = CleanTags(challenge.Tags)
	if challenge.Title == "" || len(challenge.Tags) == 0 || challenge.Difficulty == "" || strings.TrimSpace(challenge.EssayPrompt) == "" {
		return models.Challenge{}, ErrMissingField
	}

	challenge.ID = uuid.New().String()
	challenge.CreatedAt = s.now().UTC()
	if err := challenge.PrepareForSave(); err != nil {
		return models.Challenge{}, fmt.Errorf("encode tags: %w", err)
	}

	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO challenges("+challengeColumns+") VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Challenge{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, challenge.ID, challenge.Title, challenge.TagsJSON, challenge.Difficulty, challenge.EssayPrompt, challenge.CreatedAt)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("failed to execute statement: %w", err)
	}
	return challenge, nil
}

// GetChallengeByID retrieves a single challenge by its ID.
func (s *ChallengeService) GetChallengeByID(ctx context.Context, id string) (models.Challenge, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+challengeColumns+" FROM challenges WHERE id = ?", id)
	c, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Challenge{}, fmt.Errorf("challenge with id %s: %w", id, ErrNotFound)
		}
		return models.Challenge{}, err
	}
	return c, nil
}

// SearchChallenges returns the challenges matching every non-empty filter field:
// title is a case-insensitive substring match, tags match when any tag is shared,
// difficulty must match exactly. An empty filter returns the whole catalog.
func (s *ChallengeService) SearchChallenges(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, error) {
	var (
		conds []string
		args  []interface{}
	)
	if title := strings.TrimSpace(filter.Title); title != "" {
		conds = append(conds, "instr("+database.FoldFunc+"(title), "+database.FoldFunc+"(?)) > 0")
		args = append(args, title)
	}
	if tags := CleanTags(filter.Tags); len(tags) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tags)), ", ")
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(challenges.tags_json) WHERE json_each.value IN ("+placeholders+"))")
		for _, tag := range tags {
			args = append(args, tag)
		}
	}
	if filter.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, filter.Difficulty)
	}

	query := "SELECT " + challengeColumns + " FROM challenges"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}
