package dao

import (
	"context"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/model"
	"github.com/webmarks/webmarks-service/pkg/timex"
)

type tagLinkRepository struct {
	dao *Dao
}

// NewTagLinkRepository builds the gorm-backed entry-tag link repository
func NewTagLinkRepository(dao *Dao) domain.TagLinkRepository {
	return &tagLinkRepository{dao: dao}
}

func linkToDomain(m *model.EntryTag) *domain.TagLink {
	return &domain.TagLink{
		EntryID: m.EntryID,
		TagID:   m.TagID,
		Sort:    m.Sort,
	}
}

func (r *tagLinkRepository) ReplaceForEntry(ctx context.Context, entryID int64, tagIDs []int64) error {
	return r.dao.Transaction(ctx, func(ctx context.Context) error {
		db := r.dao.DB(ctx)
		if err := db.Where("entry_id = ?", entryID).Delete(&model.EntryTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		now := timex.Now()
		rows := make([]*model.EntryTag, 0, len(tagIDs))
		for i, tagID := range tagIDs {
			rows = append(rows, &model.EntryTag{
				EntryID:   entryID,
				TagID:     tagID,
				Sort:      i + 1,
				CreatedAt: now,
			})
		}
		return db.Create(rows).Error
	})
}

func (r *tagLinkRepository) ListByEntry(ctx context.Context, entryID int64) ([]*domain.TagLink, error) {
	var rows []*model.EntryTag
	err := r.dao.DB(ctx).
		Where("entry_id = ?", entryID).
		Order("sort ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.TagLink, 0, len(rows))
	for _, m := range rows {
		list = append(list, linkToDomain(m))
	}
	return list, nil
}

func (r *tagLinkRepository) ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]*domain.TagLink, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	var rows []*model.EntryTag
	err := r.dao.DB(ctx).
		Where("entry_id IN ?", entryIDs).
		Order("entry_id ASC, sort ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.TagLink, 0, len(rows))
	for _, m := range rows {
		list = append(list, linkToDomain(m))
	}
	return list, nil
}

func (r *tagLinkRepository) ListByTag(ctx context.Context, tagID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.DB(ctx).
		Model(&model.EntryTag{}).
		Where("tag_id = ?", tagID).
		Order("entry_id ASC").
		Pluck("entry_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *tagLinkRepository) DeleteByEntry(ctx context.Context, entryID int64) error {
	return r.dao.DB(ctx).
		Where("entry_id = ?", entryID).
		Delete(&model.EntryTag{}).Error
}

func (r *tagLinkRepository) ListDangling(ctx context.Context) ([]*domain.TagLink, error) {
	var rows []*model.EntryTag
	err := r.dao.DB(ctx).
		Model(&model.EntryTag{}).
		Joins("LEFT JOIN entry ON entry.id = entry_tag.entry_id").
		Joins("LEFT JOIN tag ON tag.id = entry_tag.tag_id").
		Where("entry.id IS NULL OR tag.id IS NULL").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.TagLink, 0, len(rows))
	for _, m := range rows {
		list = append(list, linkToDomain(m))
	}
	return list, nil
}

func (r *tagLinkRepository) CountByOwner(ctx context.Context, uid int64, limit int) ([]*domain.TagCount, error) {
	var rows []*domain.TagCount
	db := r.dao.DB(ctx).
		Model(&model.EntryTag{}).
		Select("entry_tag.tag_id AS tag_id, tag.title AS title, tag.color AS color, COUNT(*) AS count").
		Joins("JOIN entry ON entry.id = entry_tag.entry_id").
		Joins("JOIN tag ON tag.id = entry_tag.tag_id").
		Where("entry.uid = ?", uid).
		Group("entry_tag.tag_id, tag.title, tag.color").
		Order("count DESC, tag.title ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
