package models

import "time"

// User is an identity-provider subject that has logged in at least once.
// ID is the provider's subject claim.
type User struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Email           *string   `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	FirstName       string    `json:"firstName" gorm:"type:varchar(255)"`
	LastName        string    `json:"lastName" gorm:"type:varchar(255)"`
	ProfileImageURL string    `json:"profileImageUrl" gorm:"column:profile_image_url;type:varchar(1024)"`
	IsAdmin         bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
