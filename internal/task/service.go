package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/auth"
	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/richtext"
	"github.com/saulo-duarte/taskflow/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid id format")
)

const HomePath = "/"

type TaskService interface {
	List(ctx context.Context, f Filters, page int) (*PageResult, error)
	Stats(ctx context.Context) (*Stats, error)
	CreateTask(ctx context.Context, dto UpsertTaskDTO) (*Task, error)
	UpdateTask(ctx context.Context, id string, dto UpsertTaskDTO) (*Task, error)
	SetFinished(ctx context.Context, id string, finished bool) (*Task, error)
	DeleteByID(ctx context.Context, id string) error
	ToResponse(t *Task) TaskResponse
}

type taskService struct {
	repo     TaskRepository
	covers   storage.CoverStore
	pageSize int
	now      func() time.Time
}

func NewService(repo TaskRepository, covers storage.CoverStore, pageSize int) TaskService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &taskService{
		repo:     repo,
		covers:   covers,
		pageSize: pageSize,
		now:      time.Now,
	}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s with a malformed user id", action)
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func (s *taskService) ToResponse(t *Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsFinished:  t.IsFinished,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Cover != "" && s.covers != nil {
		u := s.covers.URL(t.Cover)
		resp.CoverURL = &u
	}
	return resp
}

func (s *taskService) List(ctx context.Context, f Filters, page int) (*PageResult, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks")
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	tasks, total, err := s.repo.Paginate(ctx, userID, f, page, s.pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to paginate tasks")
		return nil, err
	}

	last := LastPage(total, s.pageSize)
	if page > last {
		page = last
		tasks, total, err = s.repo.Paginate(ctx, userID, f, page, s.pageSize)
		if err != nil {
			log.WithError(err).Error("Failed to paginate tasks")
			return nil, err
		}
	}

	data := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, s.ToResponse(t))
	}

	return &PageResult{
		Data:        data,
		Links:       BuildLinks(HomePath, f.Query(), page, last),
		CurrentPage: page,
		LastPage:    last,
		PerPage:     s.pageSize,
		Total:       total,
	}, nil
}

func (s *taskService) Stats(ctx context.Context) (*Stats, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "read task stats")
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to count tasks by status")
		return nil, err
	}
	return &stats, nil
}

func (s *taskService) storeCover(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID, c *CoverUpload) (string, error) {
	if c == nil {
		return "", nil
	}
	key, err := s.covers.Save(ctx, userID.String(), c.Filename, c.Body)
	if err != nil {
		log.WithError(err).Error("Failed to store cover")
		return "", err
	}
	return key, nil
}

func (s *taskService) dropCover(ctx context.Context, log logrus.FieldLogger, key string) {
	if key == "" {
		return
	}
	if err := s.covers.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("cover_key", key).Warn("Failed to delete cover")
	}
}

func (s *taskService) CreateTask(ctx context.Context, dto UpsertTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create task")
	if err != nil {
		return nil, err
	}

	if errs := ValidateUpsert(dto); errs != nil {
		log.WithField("fields", errs).Info("Task rejected by validation")
		return nil, errs
	}

	cover, err := s.storeCover(ctx, log, userID, dto.Cover)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(dto.Title),
		Description: richtext.Sanitize(dto.Description),
		IsFinished:  dto.IsFinished,
		Cover:       cover,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		log.WithError(err).Error("Failed to create task")
		s.dropCover(ctx, log, cover)
		return nil, err
	}

	log.WithField("task_id", t.ID).Info("Task created successfully")
	return t, nil
}

func (s *taskService) findOwned(ctx context.Context, log logrus.FieldLogger, id string, action string) (*Task, error) {
	userID, err := getUserIDFromContext(ctx, log, action)
	if err != nil {
		return nil, err
	}

	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByIdAndUserId(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"task_id": id,
				"user_id": userID,
			}).Warn("Task not found or does not belong to user")
			return nil, ErrTaskNotFound
		}
		log.WithError(err).Error("Error finding task by ID")
		return nil, err
	}
	return t, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id string, dto UpsertTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)

	existing, err := s.findOwned(ctx, log, id, "update task")
	if err != nil {
		return nil, err
	}

	if errs := ValidateUpsert(dto); errs != nil {
		log.WithField("fields", errs).Info("Task update rejected by validation")
		return nil, errs
	}

	cover, err := s.storeCover(ctx, log, existing.UserID, dto.Cover)
	if err != nil {
		return nil, err
	}
	previousCover := ""
	if cover != "" {
		previousCover = existing.Cover
		existing.Cover = cover
	}

	existing.Title = strings.TrimSpace(dto.Title)
	existing.Description = richtext.Sanitize(dto.Description)
	existing.IsFinished = dto.IsFinished
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update task")
		s.dropCover(ctx, log, cover)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.dropCover(ctx, log, previousCover)

	log.WithField("task_id", existing.ID).Info("Task updated successfully")
	return existing, nil
}

func (s *taskService) SetFinished(ctx context.Context, id string, finished bool) (*Task, error) {
	log := config.WithContext(ctx)

	existing, err := s.findOwned(ctx, log, id, "change task status")
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.repo.UpdateFinished(ctx, existing.ID, existing.UserID, finished, at); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		log.WithError(err).Error("Failed to change task status")
		return nil, err
	}
	existing.IsFinished = finished
	existing.UpdatedAt = at

	log.WithFields(logrus.Fields{
		"task_id":     existing.ID,
		"is_finished": finished,
	}).Info("Task status changed")
	return existing, nil
}

func (s *taskService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	existing, err := s.findOwned(ctx, log, id, "delete task")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, existing.ID, existing.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		log.WithError(err).Error("Failed to delete task")
		return err
	}
	s.dropCover(ctx, log, existing.Cover)

	log.WithField("task_id", id).Info("Task deleted successfully")
	return nil
}
