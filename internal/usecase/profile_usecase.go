package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"postboard/internal/entity"
	"postboard/internal/repo/persistent"
	"postboard/pkg/authz"
	"postboard/pkg/logger"

	"github.com/google/uuid"
)

const maxProfileNameLength = 255

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageStore persists uploaded images and returns the URL they are served from.
type ImageStore interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}

type ImageUpload struct {
	File        io.Reader
	Filename    string
	ContentType string
}

type UpdateProfileInput struct {
	Name    *string
	Content *string
	Image   *ImageUpload
}

type ProfileUseCase interface {
	ListProfiles(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
	GetProfile(ctx context.Context, profileID uint) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, callerID, profileID uint, input UpdateProfileInput) (*entity.Profile, error)
}

type profileUseCase struct {
	profileRepo persistent.ProfileRepository
	imageStore  ImageStore
	logger      *logger.Logger
}

// NewProfileUseCase builds the profile usecase. imageStore may be nil, in which
// case image uploads fail with ErrImageStorageMissing.
func NewProfileUseCase(profileRepo persistent.ProfileRepository, imageStore ImageStore, logger *logger.Logger) ProfileUseCase {
	return &profileUseCase{
		profileRepo: profileRepo,
		imageStore:  imageStore,
		logger:      logger,
	}
}

func (uc *profileUseCase) ListProfiles(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	profiles, err := uc.profileRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (uc *profileUseCase) GetProfile(ctx context.Context, profileID uint) (*entity.Profile, error) {
	return uc.profileRepo.GetByID(ctx, profileID)
}

func (uc *profileUseCase) UpdateProfile(ctx context.Context, callerID, profileID uint, input UpdateProfileInput) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(callerID, profile.OwnerID) {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len([]rune(name)) > maxProfileNameLength {
			return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxProfileNameLength)
		}
		profile.Name = name
	}
	if input.Content != nil {
		profile.Content = *input.Content
	}
	var uploadedKey string
	if input.Image != nil {
		url, key, err := uc.uploadImage(ctx, profile.OwnerID, input.Image)
		if err != nil {
			return nil, err
		}
		profile.Image = url
		uploadedKey = key
	}

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		if uploadedKey != "" {
			if delErr := uc.imageStore.DeleteFile(ctx, uploadedKey); delErr != nil {
				uc.logger.Warn("Failed to remove orphaned image %s: %v", uploadedKey, delErr)
			}
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// uploadImage stores the image and returns its URL and object key.
func (uc *profileUseCase) uploadImage(ctx context.Context, ownerID uint, image *ImageUpload) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(image.Filename))
	if !allowedImageExtensions[ext] {
		return "", "", fmt.Errorf("%w: only jpg, jpeg, png and gif images are allowed", ErrInvalidInput)
	}
	if uc.imageStore == nil {
		return "", "", ErrImageStorageMissing
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("profiles/%d/%s%s", ownerID, uuid.New().String(), ext)
	url, err := uc.imageStore.UploadFile(ctx, key, image.File, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload profile image for user %d: %v", ownerID, err)
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	return url, key, nil
}
