package usecase

import (
	"context"
	"errors"
	"fmt"

	"postboard/internal/repo/cache"
	"postboard/pkg/lifecycle"
	"postboard/pkg/logger"
)

// PostCacheEvictor drops cached posts that were removed together with their
// owner's account. It acts on deleted events only.
type PostCacheEvictor struct {
	postCache cache.PostCache
	logger    *logger.Logger
}

func NewPostCacheEvictor(postCache cache.PostCache, logger *logger.Logger) *PostCacheEvictor {
	return &PostCacheEvictor{postCache: postCache, logger: logger}
}

func (e *PostCacheEvictor) HandleAccountEvent(ctx context.Context, event lifecycle.Event) error {
	if event.Type != lifecycle.EventDeleted || len(event.PostIDs) == 0 {
		return nil
	}

	var errs []error
	for _, id := range event.PostIDs {
		if err := e.postCache.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("post %d: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to evict cached posts: %w", errors.Join(errs...))
	}

	e.logger.Debug("Evicted %d cached posts of user %d", len(event.PostIDs), event.AccountID)
	return nil
}
