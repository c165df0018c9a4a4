package persistent

import (
	"context"

	"postboard/internal/entity"
	"postboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete returns the ids of the posts removed with the account.
	Delete(ctx context.Context, id uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return translate(err, entity.ErrUserNotFound)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&userModel).Error; err != nil {
		return nil, translate(err, entity.ErrUserNotFound)
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)
	result := r.db.WithContext(ctx).Model(userModel).
		Select("email", "password", "is_active", "updated_at").
		Updates(userModel)
	if result.Error != nil {
		return translate(result.Error, entity.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

// Delete removes the account together with its profile and posts in one
// transaction.
func (r *userRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	var removed []model.PostModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&model.ProfileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
			Where("owner_id = ?", id).Delete(&removed).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.UserModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint, 0, len(removed))
	for _, p := range removed {
		postIDs = append(postIDs, p.ID)
	}
	return postIDs, nil
}
