package persistent

import (
	"context"

	"postboard/internal/entity"
	"postboard/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id uint) (*entity.Profile, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*entity.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create fails with entity.ErrDuplicate when the owner already has a profile.
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	if err := r.db.WithContext(ctx).Omit("Owner").Create(profileModel).Error; err != nil {
		return translate(err, entity.ErrProfileNotFound)
	}
	created, err := r.GetByID(ctx, profileModel.ID)
	if err != nil {
		return err
	}
	*profile = *created
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (*entity.Profile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *profileRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*entity.Profile, error) {
	return r.first(ctx, "owner_id = ?", ownerID)
}

func (r *profileRepository) first(ctx context.Context, query string, args ...interface{}) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	if err := r.db.WithContext(ctx).Preload("Owner").Where(query, args...).First(&profileModel).Error; err != nil {
		return nil, translate(err, entity.ErrProfileNotFound)
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	var profileModels []model.ProfileModel
	query := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = ToProfileEntity(&profileModels[i])
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	result := r.db.WithContext(ctx).Model(profileModel).
		Select("name", "content", "image", "updated_at").
		Updates(profileModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrProfileNotFound
	}
	profile.UpdatedAt = profileModel.UpdatedAt
	return nil
}
