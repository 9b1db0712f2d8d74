package task

import (
	"github.com/saulo-duarte/taskflow/internal/inertia"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Handler *Handler
	Service TaskService
}

func NewTaskContainer(
	db *gorm.DB,
	covers storage.CoverStore,
	renderer *inertia.Renderer,
	flash *inertia.FlashStore,
	pageSize int,
) *TaskContainer {
	repo := NewRepository(db)
	service := NewService(repo, covers, pageSize)
	handler := NewHandler(service, renderer, flash)

	return &TaskContainer{
		Handler: handler,
		Service: service,
	}
}
