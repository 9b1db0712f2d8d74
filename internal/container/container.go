package container

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/router"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"github.com/saulo-duarte/taskflow/internal/task"
	"github.com/saulo-duarte/taskflow/internal/user"
	util "github.com/saulo-duarte/taskflow/internal/utils"
	"github.com/saulo-duarte/taskflow/internal/view"
	"gorm.io/gorm"
)

type Container struct {
	Settings      *config.Settings
	DB            *gorm.DB
	Covers        *storage.DiskStore
	Renderer      *inertia.Renderer
	UserContainer *user.UserContainer
	TaskContainer *task.TaskContainer
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

type options struct {
	db       *gorm.DB
	provider user.GoogleProvider
}

func WithDB(db *gorm.DB) Option {
	return func(o *options) { o.db = db }
}

func WithGoogleProvider(p user.GoogleProvider) Option {
	return func(o *options) { o.provider = p }
}

func New(ctx context.Context, settings *config.Settings, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	config.Init()
	auth.Init()
	config.InitCrypto()
	if err := util.SetLocation(settings.TimeZone); err != nil {
		return nil, err
	}

	db := o.db
	if db == nil {
		if err := config.Connect(ctx, settings.DatabaseDriver, settings.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		db = config.DB
	}

	covers, err := storage.NewDiskStore(settings.StorageDir)
	if err != nil {
		return nil, err
	}

	flash := inertia.NewFlashStore(settings.CookieSecure)
	renderer := inertia.NewRenderer(settings.AssetVersion, flash)
	view.Register(renderer)

	userContainer := user.NewUserContainer(db, settings, o.provider)
	taskContainer := task.NewTaskContainer(db, covers, renderer, flash, settings.PageSize)

	return &Container{
		Settings:      settings,
		DB:            db,
		Covers:        covers,
		Renderer:      renderer,
		UserContainer: userContainer,
		TaskContainer: taskContainer,
	}, nil
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		SessionHandler: c.UserContainer.Sessions,
		TaskHandler:    c.TaskContainer.Handler,
		Renderer:       c.Renderer,
		Covers:         c.Covers.Handler(),
		AllowedOrigins: c.Settings.AllowedOrigins,
	})
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &task.Task{})
}
