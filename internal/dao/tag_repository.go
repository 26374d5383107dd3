package dao

import (
	"context"
	"errors"
	"strings"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/model"
	"github.com/webmarks/webmarks-service/pkg/timex"

	"gorm.io/gorm"
)

type tagRepository struct {
	dao *Dao
}

// NewTagRepository builds the gorm-backed tag repository
func NewTagRepository(dao *Dao) domain.TagRepository {
	return &tagRepository{dao: dao}
}

func tagToDomain(m *model.Tag) *domain.Tag {
	return &domain.Tag{
		ID:        m.ID,
		UID:       m.UID,
		Title:     m.Title,
		Color:     m.Color,
		CreatedAt: m.CreatedAt.Time(),
	}
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var m model.Tag
	if err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return tagToDomain(&m), nil
}

func (r *tagRepository) ResolveOrCreate(ctx context.Context, uid int64, title string) (*domain.Tag, error) {
	title = strings.TrimSpace(title)

	var m model.Tag
	err := r.dao.DB(ctx).
		Where("uid = ? AND title = ?", uid, title).
		First(&m).Error
	if err == nil {
		return tagToDomain(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = model.Tag{
		UID:       uid,
		Title:     title,
		CreatedAt: timex.Now(),
	}
	err = r.dao.DB(ctx).Create(&m).Error
	if err == nil {
		return tagToDomain(&m), nil
	}
	// a concurrent writer got there first; the unique index on
	// (uid, title) guarantees the re-select finds the winner
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var won model.Tag
		if err := r.dao.DB(ctx).
			Where("uid = ? AND title = ?", uid, title).
			First(&won).Error; err != nil {
			return nil, err
		}
		return tagToDomain(&won), nil
	}
	return nil, err
}

func (r *tagRepository) ListByOwner(ctx context.Context, uid int64) ([]*domain.Tag, error) {
	var rows []*model.Tag
	err := r.dao.DB(ctx).
		Where("uid = ?", uid).
		Order("title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Tag, 0, len(rows))
	for _, m := range rows {
		list = append(list, tagToDomain(m))
	}
	return list, nil
}

func (r *tagRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []*model.Tag
	err := r.dao.DB(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Tag, 0, len(rows))
	for _, m := range rows {
		list = append(list, tagToDomain(m))
	}
	return list, nil
}
