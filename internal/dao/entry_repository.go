package dao

import (
	"context"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/model"
	"github.com/webmarks/webmarks-service/pkg/convert"
	"github.com/webmarks/webmarks-service/pkg/timex"

	"gorm.io/gorm"
)

type entryRepository struct {
	dao *Dao
}

// NewEntryRepository builds the gorm-backed entry repository
func NewEntryRepository(dao *Dao) domain.EntryRepository {
	return &entryRepository{dao: dao}
}

func entryToDomain(m *model.Entry) *domain.Entry {
	d := &domain.Entry{}
	convert.StructAssign(m, d)
	d.CreatedAt = m.CreatedAt.Time()
	d.UpdatedAt = m.UpdatedAt.Time()
	return d
}

func entryToModel(d *domain.Entry) *model.Entry {
	m := &model.Entry{}
	convert.StructAssign(d, m)
	m.CreatedAt = timex.Time(d.CreatedAt)
	m.UpdatedAt = timex.Time(d.UpdatedAt)
	return m
}

func (r *entryRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Entry, error) {
	var m model.Entry
	err := r.dao.DB(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return entryToDomain(&m), nil
}

func (r *entryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m := entryToModel(entry)
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return entryToDomain(m), nil
}

func (r *entryRepository) Update(ctx context.Context, entry *domain.Entry, uid int64) (*domain.Entry, error) {
	m := entryToModel(entry)
	m.UpdatedAt = timex.Now()
	err := r.dao.DB(ctx).
		Where("id = ? AND uid = ?", entry.ID, uid).
		Select("url", "title", "notes", "quotes", "location", "context", "song", "screenshot_image_id", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, entry.ID, uid)
}

func (r *entryRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.Transaction(ctx, func(ctx context.Context) error {
		db := r.dao.DB(ctx)
		res := db.Where("id = ? AND uid = ?", id, uid).Delete(&model.Entry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return db.Where("entry_id = ?", id).Delete(&model.EntryTag{}).Error
	})
}

func (r *entryRepository) List(ctx context.Context, uid int64, allUsers bool, limit int) ([]*domain.Entry, error) {
	db := r.dao.DB(ctx).Model(&model.Entry{})
	if !allUsers {
		db = db.Where("uid = ?", uid)
	}
	db = db.Order("created_at DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var rows []*model.Entry
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Entry, 0, len(rows))
	for _, m := range rows {
		list = append(list, entryToDomain(m))
	}
	return list, nil
}
