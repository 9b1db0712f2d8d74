package task

import (
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsFinished  bool      `json:"is_finished"`
	CoverURL    *string   `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

type PageResult struct {
	Data        []TaskResponse `json:"data"`
	Links       []Link         `json:"links"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	PerPage     int            `json:"per_page"`
	Total       int64          `json:"total"`
}

type Stats struct {
	Finished   int64 `json:"finished"`
	Unfinished int64 `json:"unfinished"`
}

func (s Stats) Total() int64 {
	return s.Finished + s.Unfinished
}

// CompletionPercent is finished/total rounded to the nearest integer, 0 for
// an empty task set.
func (s Stats) CompletionPercent() int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Finished) / float64(total) * 100))
}

type AuthProps struct {
	Name string `json:"name"`
}

type CoverUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UpsertTaskDTO struct {
	Title       string
	Description string
	IsFinished  bool
	Cover       *CoverUpload
}
