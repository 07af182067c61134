package models

import (
	"encoding/json"
	"time"
)

// Challenge is a writing exercise in the catalog.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	Difficulty  string    `json:"difficulty"` // e.g. "Easy", "Medium", "Hard"
	EssayPrompt string    `json:"essay_prompt"`
	CreatedAt   time.Time `json:"created_at"`

	// JSON string field for DB storage
	TagsJSON string `json:"-"`
}

// ChallengeFilter narrows a catalog search. Zero-valued fields are ignored.
type ChallengeFilter struct {
	Title      string
	Tags       []string
	Difficulty string
}

// PrepareForSave marshals Tags into TagsJSON for DB storage.
func (c *Challenge) PrepareForSave() error {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	c.TagsJSON = string(b)
	return nil
}

// PrepareForAPI unmarshals TagsJSON into Tags for API responses.
func (c *Challenge) PrepareForAPI() error {
	c.Tags = []string{}
	if c.TagsJSON == "" {
		return nil
	}
	return json.Unmarshal([]byte(c.TagsJSON), &c.Tags)
}
