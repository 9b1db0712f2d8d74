package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoogleID                    string    `gorm:"size:64;uniqueIndex" json:"-"`
	Email                       string    `gorm:"size:255;index" json:"email"`
	Name                        string    `gorm:"size:255" json:"name"`
	Picture                     string    `gorm:"size:1024" json:"picture"`
	Role                        string    `gorm:"size:32;default:user" json:"role"`
	EncryptedGoogleAccessToken  string    `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
