package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/webmarks/webmarks-service/internal/domain"

	"gorm.io/gorm"
)

// memStore is an in-memory implementation of the repository interfaces,
// shared by one test case
type memStore struct {
	nextEntryID int64
	nextTagID   int64
	entries     map[int64]*domain.Entry
	tags        map[int64]*domain.Tag
	links       []*domain.TagLink
}

func newMemStore() *memStore {
	return &memStore{
		nextEntryID: 1,
		nextTagID:   1,
		entries:     map[int64]*domain.Entry{},
		tags:        map[int64]*domain.Tag{},
	}
}

func (s *memStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memEntryRepo struct{ s *memStore }

func (r *memEntryRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Entry, error) {
	e, ok := r.s.entries[id]
	if !ok || e.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *memEntryRepo) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	clone := *entry
	clone.ID = r.s.nextEntryID
	r.s.nextEntryID++
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.s.entries[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memEntryRepo) Update(ctx context.Context, entry *domain.Entry, uid int64) (*domain.Entry, error) {
	existing, ok := r.s.entries[entry.ID]
	if !ok || existing.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	existing.URL = entry.URL
	existing.Title = entry.Title
	existing.Notes = entry.Notes
	existing.Quotes = entry.Quotes
	existing.Location = entry.Location
	existing.Context = entry.Context
	existing.Song = entry.Song
	existing.ScreenshotImageID = entry.ScreenshotImageID
	existing.UpdatedAt = time.Now()
	clone := *existing
	return &clone, nil
}

func (r *memEntryRepo) Delete(ctx context.Context, id, uid int64) error {
	e, ok := r.s.entries[id]
	if !ok || e.UID != uid {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.entries, id)
	kept := r.s.links[:0]
	for _, l := range r.s.links {
		if l.EntryID != id {
			kept = append(kept, l)
		}
	}
	r.s.links = kept
	return nil
}

func (r *memEntryRepo) List(ctx context.Context, uid int64, allUsers bool, limit int) ([]*domain.Entry, error) {
	var list []*domain.Entry
	for _, e := range r.s.entries {
		if allUsers || e.UID == uid {
			clone := *e
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type memTagRepo struct{ s *memStore }

func (r *memTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	t, ok := r.s.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTagRepo) ResolveOrCreate(ctx context.Context, uid int64, title string) (*domain.Tag, error) {
	title = strings.TrimSpace(title)
	for _, t := range r.s.tags {
		if t.UID == uid && t.Title == title {
			clone := *t
			return &clone, nil
		}
	}
	t := &domain.Tag{ID: r.s.nextTagID, UID: uid, Title: title, CreatedAt: time.Now()}
	r.s.nextTagID++
	r.s.tags[t.ID] = t
	clone := *t
	return &clone, nil
}

func (r *memTagRepo) ListByOwner(ctx context.Context, uid int64) ([]*domain.Tag, error) {
	var list []*domain.Tag
	for _, t := range r.s.tags {
		if t.UID == uid {
			clone := *t
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	return list, nil
}

func (r *memTagRepo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Tag, error) {
	var list []*domain.Tag
	for _, id := range ids {
		if t, ok := r.s.tags[id]; ok {
			clone := *t
			list = append(list, &clone)
		}
	}
	return list, nil
}

type memLinkRepo struct{ s *memStore }

func (r *memLinkRepo) ReplaceForEntry(ctx context.Context, entryID int64, tagIDs []int64) error {
	if err := r.DeleteByEntry(ctx, entryID); err != nil {
		return err
	}
	for i, tagID := range tagIDs {
		r.s.links = append(r.s.links, &domain.TagLink{EntryID: entryID, TagID: tagID, Sort: i + 1})
	}
	return nil
}

func (r *memLinkRepo) ListByEntry(ctx context.Context, entryID int64) ([]*domain.TagLink, error) {
	var list []*domain.TagLink
	for _, l := range r.s.links {
		if l.EntryID == entryID {
			clone := *l
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Sort < list[j].Sort })
	return list, nil
}

func (r *memLinkRepo) ListByEntryIDs(ctx context.Context, entryIDs []int64) ([]*domain.TagLink, error) {
	want := map[int64]bool{}
	for _, id := range entryIDs {
		want[id] = true
	}
	var list []*domain.TagLink
	for _, l := range r.s.links {
		if want[l.EntryID] {
			clone := *l
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EntryID != list[j].EntryID {
			return list[i].EntryID < list[j].EntryID
		}
		return list[i].Sort < list[j].Sort
	})
	return list, nil
}

func (r *memLinkRepo) ListByTag(ctx context.Context, tagID int64) ([]int64, error) {
	var ids []int64
	for _, l := range r.s.links {
		if l.TagID == tagID {
			ids = append(ids, l.EntryID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memLinkRepo) DeleteByEntry(ctx context.Context, entryID int64) error {
	kept := r.s.links[:0]
	for _, l := range r.s.links {
		if l.EntryID != entryID {
			kept = append(kept, l)
		}
	}
	r.s.links = kept
	return nil
}

func (r *memLinkRepo) ListDangling(ctx context.Context) ([]*domain.TagLink, error) {
	var list []*domain.TagLink
	for _, l := range r.s.links {
		_, entryOK := r.s.entries[l.EntryID]
		_, tagOK := r.s.tags[l.TagID]
		if !entryOK || !tagOK {
			clone := *l
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *memLinkRepo) CountByOwner(ctx context.Context, uid int64, limit int) ([]*domain.TagCount, error) {
	counts := map[int64]int64{}
	for _, l := range r.s.links {
		e, ok := r.s.entries[l.EntryID]
		if !ok || e.UID != uid {
			continue
		}
		counts[l.TagID]++
	}
	var list []*domain.TagCount
	for tagID, n := range counts {
		t, ok := r.s.tags[tagID]
		if !ok {
			continue
		}
		list = append(list, &domain.TagCount{TagID: tagID, Title: t.Title, Color: t.Color, Count: n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Title < list[j].Title
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func newTestServices() (*EntryService, *TagService, *memStore) {
	s := newMemStore()
	entryRepo := &memEntryRepo{s: s}
	tagRepo := &memTagRepo{s: s}
	linkRepo := &memLinkRepo{s: s}
	return NewEntryService(entryRepo, tagRepo, linkRepo, s),
		NewTagService(tagRepo, linkRepo),
		s
}
