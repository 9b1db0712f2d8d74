package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/taskflow/internal/richtext"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByIdAndUserId(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateFinished(ctx context.Context, id, userID uuid.UUID, finished bool, at time.Time) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Paginate(ctx context.Context, userID uuid.UUID, f Filters, page, perPage int) ([]*Task, int64, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (Stats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Task) error {
	t.DescriptionText = richtext.PlainText(t.Description)
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByIdAndUserId(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]interface{}{
			"title":            t.Title,
			"description":      t.Description,
			"description_text": richtext.PlainText(t.Description),
			"is_finished":      t.IsFinished,
			"cover":            t.Cover,
			"updated_at":       t.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateFinished(ctx context.Context, id, userID uuid.UUID, finished bool, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_finished": finished,
			"updated_at":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) filtered(ctx context.Context, userID uuid.UUID, f Filters) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Task{}).Where("user_id = ?", userID)

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description_text) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	switch f.Status {
	case StatusFinished:
		q = q.Where("is_finished = ?", true)
	case StatusUnfinished:
		q = q.Where("is_finished = ?", false)
	}
	return q
}

func (r *repository) Paginate(ctx context.Context, userID uuid.UUID, f Filters, page, perPage int) ([]*Task, int64, error) {
	var total int64
	if err := r.filtered(ctx, userID, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []*Task
	if total == 0 {
		return tasks, 0, nil
	}

	err := r.filtered(ctx, userID, f).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *repository) CountByStatus(ctx context.Context, userID uuid.UUID) (Stats, error) {
	var rows []struct {
		IsFinished bool
		Total      int64
	}
	err := r.db.WithContext(ctx).
		Model(&Task{}).
		Select("is_finished, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("is_finished").
		Scan(&rows).Error
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	for _, row := range rows {
		if row.IsFinished {
			s.Finished += row.Total
		} else {
			s.Unfinished += row.Total
		}
	}
	return s, nil
}
