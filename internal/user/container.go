package user

import (
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler  *Handler
	Sessions *auth.Handler
	Service  UserService
	Repo     UserRepository
}

func NewUserContainer(db *gorm.DB, settings *config.Settings, provider GoogleProvider) *UserContainer {
	if provider == nil {
		provider = NewGoogleProvider(settings.Google)
	}
	repo := NewRepository(db)
	service := NewService(repo, provider)
	sessions := auth.NewHandler(settings)
	handler := NewHandler(service, sessions, settings.CookieSecure)

	return &UserContainer{
		Handler:  handler,
		Sessions: sessions,
		Service:  service,
		Repo:     repo,
	}
}
