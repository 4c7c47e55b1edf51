package models

import "time"

// Account is a caller identity issued by the external login provider.
type Account struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Email           *string   `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FirstName       *string   `json:"firstName" gorm:"type:varchar(255)"`
	LastName        *string   `json:"lastName" gorm:"type:varchar(255)"`
	ProfileImageURL *string   `json:"profileImageUrl" gorm:"column:profile_image_url;type:varchar(500)"`
	IsAdmin         bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (Account) TableName() string {
	return "accounts"
}

// OAuthProfile is what the login provider tells us about the caller.
type OAuthProfile struct {
	ID              string
	Login           string
	DisplayName     string
	Email           string
	ProfileImageURL string
}
