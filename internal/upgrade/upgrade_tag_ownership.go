package upgrade

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/model"
	"github.com/webmarks/webmarks-service/pkg/code"

	"gorm.io/gorm"
)

// TagOwnershipMigrate assigns an owner to every tag that predates
// owner-scoped tags. A tag used by entries of several users is split: the
// smallest uid keeps (or merges into) the original row, every other user
// gets their own copy and their links are re-pointed to it. Tags with no
// links are left unowned.
type TagOwnershipMigrate struct{}

func (m *TagOwnershipMigrate) Version() string {
	return "1.1.0"
}

func (m *TagOwnershipMigrate) Description() string {
	return "Assign an owner to every unowned tag and split tags shared across users"
}

func (m *TagOwnershipMigrate) Up(db *gorm.DB, ctx context.Context) error {
	var unowned []*model.Tag
	if err := db.WithContext(ctx).
		Where("uid = ?", domain.UnownedUID).
		Order("id ASC").
		Find(&unowned).Error; err != nil {
		return err
	}

	for _, tag := range unowned {
		if err := m.migrateTag(db.WithContext(ctx), tag); err != nil {
			return err
		}
	}
	return nil
}

func (m *TagOwnershipMigrate) migrateTag(db *gorm.DB, tag *model.Tag) error {
	var links []*model.EntryTag
	if err := db.Where("tag_id = ?", tag.ID).
		Order("entry_id ASC").
		Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		// dead tag, nobody gets it
		return nil
	}

	entryIDs := make([]int64, 0, len(links))
	for _, l := range links {
		entryIDs = append(entryIDs, l.EntryID)
	}
	var entries []*model.Entry
	if err := db.Where("id IN ?", entryIDs).Find(&entries).Error; err != nil {
		return err
	}
	ownerByEntry := make(map[int64]int64, len(entries))
	for _, e := range entries {
		ownerByEntry[e.ID] = e.UID
	}

	// entries of a link must exist; a dangling link means the store is
	// corrupt and the migration must not guess
	entriesByOwner := map[int64][]int64{}
	for _, l := range links {
		owner, ok := ownerByEntry[l.EntryID]
		if !ok {
			return code.ErrorMigrationInconsistency.
				WithDetails(fmt.Sprintf("tag %d is linked to missing entry %d", tag.ID, l.EntryID))
		}
		if owner == domain.UnownedUID {
			continue
		}
		entriesByOwner[owner] = append(entriesByOwner[owner], l.EntryID)
	}
	if len(entriesByOwner) == 0 {
		return nil
	}

	owners := make([]int64, 0, len(entriesByOwner))
	for owner := range entriesByOwner {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for i, owner := range owners {
		target, err := m.targetTagFor(db, tag, owner, i == 0)
		if err != nil {
			return err
		}
		if target.ID == tag.ID {
			continue
		}
		for _, entryID := range entriesByOwner[owner] {
			if err := m.repointLink(db, entryID, tag.ID, target.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// targetTagFor picks the tag that owner's links should point at. The first
// owner claims the original row unless they already have a tag with the
// same title; later owners get a copy created on demand.
func (m *TagOwnershipMigrate) targetTagFor(db *gorm.DB, tag *model.Tag, owner int64, first bool) (*model.Tag, error) {
	var existing model.Tag
	err := db.Where("uid = ? AND title = ?", owner, tag.Title).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if first {
		if err := db.Model(&model.Tag{}).
			Where("id = ?", tag.ID).
			Update("uid", owner).Error; err != nil {
			return nil, err
		}
		claimed := *tag
		claimed.UID = owner
		return &claimed, nil
	}

	clone := model.Tag{
		UID:       owner,
		Title:     tag.Title,
		Color:     tag.Color,
		CreatedAt: tag.CreatedAt,
	}
	if err := db.Create(&clone).Error; err != nil {
		return nil, err
	}
	return &clone, nil
}

// repointLink moves one link from the shared tag to the owner's tag,
// keeping its sort position. When the entry already links to the target
// tag the old link is just dropped.
func (m *TagOwnershipMigrate) repointLink(db *gorm.DB, entryID, fromTagID, toTagID int64) error {
	var count int64
	if err := db.Model(&model.EntryTag{}).
		Where("entry_id = ? AND tag_id = ?", entryID, toTagID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return db.Where("entry_id = ? AND tag_id = ?", entryID, fromTagID).
			Delete(&model.EntryTag{}).Error
	}
	return db.Model(&model.EntryTag{}).
		Where("entry_id = ? AND tag_id = ?", entryID, fromTagID).
		Update("tag_id", toTagID).Error
}
