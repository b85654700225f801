package models

import (
	"time"
)

// Memory is one answered chapter prompt.
type Memory struct {
	ID             string    `json:"id" db:"id"`
	UserID         int       `json:"user_id" db:"user_id"`
	ChapterID      string    `json:"chapter_id" db:"chapter_id"`
	PromptIndex    int       `json:"prompt_index" db:"prompt_index"`
	Question       string    `json:"question" db:"question"`
	Answer         string    `json:"answer" db:"answer"`
	WordCount      int       `json:"word_count" db:"word_count"`
	TimeToComplete int       `json:"time_to_complete" db:"time_to_complete"` // in seconds
	Decade         *int      `json:"decade,omitempty" db:"decade"`           // e.g. 1960
	HasAudio       bool      `json:"has_audio" db:"has_audio"`
	HasPhoto       bool      `json:"has_photo" db:"has_photo"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SaveMemoryRequest is the save-contribution payload from the web client.
type SaveMemoryRequest struct {
	ChapterID             string   `json:"chapter_id" validate:"required"`
	PromptIndex           int      `json:"prompt_index"`
	Question              string   `json:"question" validate:"required"`
	Answer                string   `json:"answer" validate:"required"`
	TimeToCompleteSeconds int      `json:"time_to_complete_seconds"`
	Decade                *int     `json:"decade,omitempty"`
	People                []string `json:"people,omitempty"`
	Places                []string `json:"places,omitempty"`
	HasAudio              bool     `json:"has_audio"`
	HasPhoto              bool     `json:"has_photo"`
}
