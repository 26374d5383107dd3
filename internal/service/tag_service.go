package service

import (
	"context"

	"github.com/webmarks/webmarks-service/internal/domain"
	"github.com/webmarks/webmarks-service/internal/dto"
	"github.com/webmarks/webmarks-service/pkg/code"
)

const defaultCloudLimit = 25

// TagService implements the tag listing operations
type TagService struct {
	tagRepo  domain.TagRepository
	linkRepo domain.TagLinkRepository
}

func NewTagService(tagRepo domain.TagRepository, linkRepo domain.TagLinkRepository) *TagService {
	return &TagService{tagRepo: tagRepo, linkRepo: linkRepo}
}

// Cloud returns the caller's most used tags ordered by usage count
// descending, 25 of them unless the caller asks for another limit
func (s *TagService) Cloud(ctx context.Context, uid int64, params *dto.TagCloudRequest) ([]*dto.TagCloudItem, error) {
	limit := params.Limit
	if limit == 0 {
		limit = defaultCloudLimit
	}
	counts, err := s.linkRepo.CountByOwner(ctx, uid, limit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	items := make([]*dto.TagCloudItem, 0, len(counts))
	for _, c := range counts {
		items = append(items, &dto.TagCloudItem{
			ID:    c.TagID,
			Title: c.Title,
			Color: c.Color,
			Count: c.Count,
		})
	}
	return items, nil
}

// List returns every tag owned by uid, alphabetically
func (s *TagService) List(ctx context.Context, uid int64) ([]*dto.TagResponse, error) {
	tags, err := s.tagRepo.ListByOwner(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	list := make([]*dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		list = append(list, &dto.TagResponse{
			ID:        t.ID,
			Title:     t.Title,
			Color:     t.Color,
			CreatedAt: t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}
