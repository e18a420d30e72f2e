package models

import "time"

type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProductID  uint      `json:"productId" gorm:"not null;index"`
	UserID     string    `json:"userId" gorm:"type:varchar(255);not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	Title      string    `json:"title" gorm:"type:varchar(255)"`
	Comment    string    `json:"comment"`
	IsVerified bool      `json:"isVerified" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}
