package models

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null" validate:"omitempty,max=255"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Image       string    `json:"image" gorm:"type:varchar(1024)" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt"`
}
