package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultProfileImage is used when a profile is saved without an image.
const DefaultProfileImage = "../default_profile_lcovgw"

type ProfileModel struct {
	ID        uint      `gorm:"primaryKey"`
	OwnerID   uint      `gorm:"not null;uniqueIndex"`
	Owner     UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"type:varchar(255);not null;default:''"`
	Content   string    `gorm:"type:text;not null;default:''"`
	Image     string    `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}

func (p *ProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.Image == "" {
		p.Image = DefaultProfileImage
	}
	return nil
}
