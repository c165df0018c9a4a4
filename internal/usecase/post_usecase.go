package usecase

import (
	"context"
	"fmt"
	"strings"

	"postboard/internal/entity"
	"postboard/internal/repo/cache"
	"postboard/internal/repo/persistent"
	"postboard/pkg/authz"
	"postboard/pkg/logger"
)

const maxTitleLength = 255

type UpdatePostInput struct {
	Title   *string
	Content *string
}

type PostUseCase interface {
	// ListPosts returns one page of posts and the total matching the filter.
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, int64, error)
	CreatePost(ctx context.Context, callerID uint, title, content string) (*entity.Post, error)
	GetPost(ctx context.Context, postID uint) (*entity.Post, error)
	UpdatePost(ctx context.Context, callerID, postID uint, input UpdatePostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, callerID, postID uint) error
}

type postUseCase struct {
	postRepo  persistent.PostRepository
	postCache cache.PostCache
	logger    *logger.Logger
}

// NewPostUseCase builds the post usecase. postCache may be nil.
func NewPostUseCase(postRepo persistent.PostRepository, postCache cache.PostCache, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo:  postRepo,
		postCache: postCache,
		logger:    logger,
	}
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, int64, error) {
	posts, err := uc.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	total := int64(len(posts))
	if filter.Limit > 0 || filter.Offset > 0 {
		total, err = uc.postRepo.Count(ctx, filter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count posts: %w", err)
		}
	}
	return posts, total, nil
}

func (uc *postUseCase) CreatePost(ctx context.Context, callerID uint, title, content string) (*entity.Post, error) {
	if callerID == authz.Anonymous {
		return nil, ErrForbidden
	}

	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		OwnerID: callerID,
		Title:   title,
		Content: content,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post %d created by user %d", post.ID, callerID)
	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID uint) (*entity.Post, error) {
	if uc.postCache != nil {
		cached, err := uc.postCache.Get(ctx, postID)
		if err != nil {
			uc.logger.Warn("Failed to read post %d from cache: %v", postID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	uc.cachePost(ctx, post)
	return post, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, callerID, postID uint, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.ownedPost(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		post.Title = title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	uc.invalidate(ctx, postID)
	return post, nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, callerID, postID uint) error {
	if _, err := uc.ownedPost(ctx, callerID, postID); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	uc.invalidate(ctx, postID)
	uc.logger.Info("Post %d deleted by user %d", postID, callerID)
	return nil
}

// ownedPost loads the post from storage, bypassing the cache, and checks the
// caller owns it. A missing post is reported before ownership.
func (uc *postUseCase) ownedPost(ctx context.Context, callerID, postID uint) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(callerID, post.OwnerID) {
		return nil, ErrForbidden
	}
	return post, nil
}

func (uc *postUseCase) cachePost(ctx context.Context, post *entity.Post) {
	if uc.postCache == nil {
		return
	}
	if err := uc.postCache.Set(ctx, post); err != nil {
		uc.logger.Warn("Failed to cache post %d: %v", post.ID, err)
	}
}

func (uc *postUseCase) invalidate(ctx context.Context, postID uint) {
	if uc.postCache == nil {
		return
	}
	if err := uc.postCache.Delete(ctx, postID); err != nil {
		uc.logger.Warn("Failed to evict post %d from cache: %v", postID, err)
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title may not be blank", ErrInvalidInput)
	}
	if len([]rune(title)) > maxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTitleLength)
	}
	return title, nil
}
