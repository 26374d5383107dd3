package service

import (
	"context"

	"github.com/webmarks/webmarks-service/global"
	"github.com/webmarks/webmarks-service/internal/domain"

	"go.uber.org/zap"
)

// LinkAuditService checks entry-tag link integrity. Links pointing at a
// deleted entry or tag should not exist; finding one means a write path
// skipped the cascade.
type LinkAuditService struct {
	linkRepo domain.TagLinkRepository
}

func NewLinkAuditService(linkRepo domain.TagLinkRepository) *LinkAuditService {
	return &LinkAuditService{linkRepo: linkRepo}
}

// CheckLinkIntegrity reports every dangling link and returns them
func (s *LinkAuditService) CheckLinkIntegrity(ctx context.Context) ([]*domain.TagLink, error) {
	dangling, err := s.linkRepo.ListDangling(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range dangling {
		global.Log().Warn("dangling entry-tag link",
			zap.Int64("entry_id", l.EntryID),
			zap.Int64("tag_id", l.TagID))
	}
	return dangling, nil
}
