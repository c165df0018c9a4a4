package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type PostModel struct {
	ID        uint      `gorm:"primaryKey"`
	OwnerID   uint      `gorm:"not null;index"`
	Owner     UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeSave(tx *gorm.DB) error {
	p.Title = strings.TrimSpace(p.Title)
	return nil
}
