package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                     string `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	FullName               string `gorm:"column:full_name;not null" json:"full_name"`
	Email                  string `gorm:"column:email;unique;not null" json:"email"`
	IsVerified             bool   `gorm:"column:is_verified;default:false" json:"is_verified"`
	Password               string `gorm:"column:password;not null" json:"-"`
	Role                   string `gorm:"column:role;default:member" json:"role"`
	PersonalizationEnabled bool   `gorm:"column:personalization_enabled;default:true" json:"personalization_enabled"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

const (
	RoleMember    = "member"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)
