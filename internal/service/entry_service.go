package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/webmarks/webmarks-service/global"
	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/dto"
	"github.com/webmarks/webmarks-service/pkg/code"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// list responses are capped when the caller does not ask for a limit
const defaultListLimit = 100

// EntryService implements the bookmark entry operations
type EntryService struct {
	entryRepo domain.EntryRepository
	tagRepo   domain.TagRepository
	linkRepo  domain.TagLinkRepository
	tx        domain.TxManager
	resolveSF singleflight.Group
}

func NewEntryService(entryRepo domain.EntryRepository, tagRepo domain.TagRepository, linkRepo domain.TagLinkRepository, tx domain.TxManager) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		tagRepo:   tagRepo,
		linkRepo:  linkRepo,
		tx:        tx,
	}
}

// Save creates the entry when params.ID is zero, otherwise updates it, and
// replaces its tag links with the comma separated list in params.Tags.
// Tag titles are trimmed, empties dropped, duplicates keep their first
// position; link sort follows list order starting at 1.
func (s *EntryService) Save(ctx context.Context, uid int64, params *dto.EntrySaveRequest) (*dto.EntryResponse, error) {
	titles := SplitTagTitles(params.Tags)

	// tags are resolved outside the entry transaction: creation is
	// idempotent under the (uid, title) unique index and a created tag
	// staying behind after a failed save is harmless
	tagIDs := make([]int64, 0, len(titles))
	for _, title := range titles {
		tag, err := s.resolveTag(ctx, uid, title)
		if err != nil {
			global.Log().Error("tag resolve failed",
				zap.Int64("uid", uid), zap.String("title", title), zap.Error(err))
			return nil, code.ErrorTagResolve.WithDetails(err.Error())
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	var saved *domain.Entry
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if params.ID == 0 {
			saved, err = s.entryRepo.Create(ctx, &domain.Entry{
				UID:               uid,
				URL:               params.URL,
				Title:             params.Title,
				Notes:             params.Notes,
				Quotes:            params.Quotes,
				Location:          params.Location,
				Context:           params.Context,
				Song:              params.Song,
				ScreenshotImageID: params.ScreenshotImageID,
			})
		} else {
			saved, err = s.entryRepo.Update(ctx, &domain.Entry{
				ID:                params.ID,
				URL:               params.URL,
				Title:             params.Title,
				Notes:             params.Notes,
				Quotes:            params.Quotes,
				Location:          params.Location,
				Context:           params.Context,
				Song:              params.Song,
				ScreenshotImageID: params.ScreenshotImageID,
			}, uid)
		}
		if err != nil {
			return err
		}
		return s.linkRepo.ReplaceForEntry(ctx, saved.ID, tagIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNotFound
		}
		global.Log().Error("entry save failed",
			zap.Int64("uid", uid), zap.Int64("entry_id", params.ID), zap.Error(err))
		return nil, code.ErrorEntrySave.WithDetails(err.Error())
	}

	return s.responseFor(ctx, saved)
}

// resolveTag collapses concurrent resolve-or-create calls for the same
// (uid, title) into one repository round trip
func (s *EntryService) resolveTag(ctx context.Context, uid int64, title string) (*domain.Tag, error) {
	key := fmt.Sprintf("%d|%s", uid, title)
	v, err, _ := s.resolveSF.Do(key, func() (interface{}, error) {
		return s.tagRepo.ResolveOrCreate(ctx, uid, title)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Tag), nil
}

// Get returns one entry owned by uid together with its ordered tags
func (s *EntryService) Get(ctx context.Context, uid int64, params *dto.EntryGetRequest) (*dto.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.responseFor(ctx, entry)
}

// Delete removes an entry owned by uid and all of its tag links
func (s *EntryService) Delete(ctx context.Context, uid int64, params *dto.EntryDeleteRequest) error {
	if err := s.entryRepo.Delete(ctx, params.ID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotFound
		}
		global.Log().Error("entry delete failed",
			zap.Int64("uid", uid), zap.Int64("entry_id", params.ID), zap.Error(err))
		return code.ErrorEntryDelete.WithDetails(err.Error())
	}
	return nil
}

// List returns entries newest first, optionally filtered by a search term.
// A search term matches an entry when any of its tag titles, url, title or
// notes contains any of the comma or space separated terms, case
// insensitively. allUsers widens the scope to every owner and is only
// honored upstream for the admin user.
func (s *EntryService) List(ctx context.Context, uid int64, params *dto.EntryListRequest) ([]*dto.EntryResponse, error) {
	pattern := BuildSearchPattern(params.Search)

	limit := params.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	// with a search pattern the limit applies after filtering, so the
	// repository load stays unbounded
	repoLimit := limit
	if pattern != nil {
		repoLimit = 0
	}

	entries, err := s.entryRepo.List(ctx, uid, params.AllUsers, repoLimit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if len(entries) == 0 {
		return []*dto.EntryResponse{}, nil
	}

	entryIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		entryIDs = append(entryIDs, e.ID)
	}
	links, err := s.linkRepo.ListByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	tagsByID, err := s.tagsForLinks(ctx, links)
	if err != nil {
		return nil, err
	}
	linksByEntry := make(map[int64][]*domain.TagLink, len(entries))
	for _, l := range links {
		linksByEntry[l.EntryID] = append(linksByEntry[l.EntryID], l)
	}

	list := make([]*dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		tags := tagItems(linksByEntry[e.ID], tagsByID)
		if pattern != nil && !entryMatches(pattern, e, tags) {
			continue
		}
		list = append(list, entryResponse(e, tags))
		if limit > 0 && len(list) >= limit {
			break
		}
	}
	return list, nil
}

func entryMatches(pattern *regexp.Regexp, e *domain.Entry, tags []*dto.TagItem) bool {
	for _, t := range tags {
		if pattern.MatchString(t.Title) {
			return true
		}
	}
	return pattern.MatchString(e.URL) ||
		pattern.MatchString(e.Title) ||
		pattern.MatchString(e.Notes)
}

func (s *EntryService) responseFor(ctx context.Context, entry *domain.Entry) (*dto.EntryResponse, error) {
	links, err := s.linkRepo.ListByEntry(ctx, entry.ID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	tagsByID, err := s.tagsForLinks(ctx, links)
	if err != nil {
		return nil, err
	}
	return entryResponse(entry, tagItems(links, tagsByID)), nil
}

func (s *EntryService) tagsForLinks(ctx context.Context, links []*domain.TagLink) (map[int64]*domain.Tag, error) {
	ids := make([]int64, 0, len(links))
	seen := make(map[int64]struct{}, len(links))
	for _, l := range links {
		if _, ok := seen[l.TagID]; ok {
			continue
		}
		seen[l.TagID] = struct{}{}
		ids = append(ids, l.TagID)
	}
	tags, err := s.tagRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	byID := make(map[int64]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	return byID, nil
}

func tagItems(links []*domain.TagLink, tagsByID map[int64]*domain.Tag) []*dto.TagItem {
	items := make([]*dto.TagItem, 0, len(links))
	for _, l := range links {
		tag, ok := tagsByID[l.TagID]
		if !ok {
			// dangling link, the audit task reports these
			continue
		}
		items = append(items, &dto.TagItem{ID: tag.ID, Title: tag.Title, Color: tag.Color})
	}
	return items
}

func entryResponse(e *domain.Entry, tags []*dto.TagItem) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:                e.ID,
		UID:               e.UID,
		URL:               e.URL,
		Title:             e.Title,
		Notes:             e.Notes,
		Quotes:            e.Quotes,
		Location:          e.Location,
		Context:           e.Context,
		Song:              e.Song,
		ScreenshotImageID: e.ScreenshotImageID,
		Tags:              tags,
		CreatedAt:         e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
