package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	// DescriptionText is the description without markup, used for search.
	DescriptionText string    `gorm:"type:text" json:"-"`
	IsFinished      bool      `gorm:"not null;index" json:"is_finished"`
	Cover           string    `gorm:"size:512" json:"-"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
