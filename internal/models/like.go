package models

import "time"

// ProjectLike records that one account likes one project. The composite
// unique index allows at most one row per (project, account).
type ProjectLike struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID uint      `json:"projectId" gorm:"not null;uniqueIndex:idx_project_likes_project_account,priority:1"`
	AccountID string    `json:"accountId" gorm:"type:varchar(255);not null;uniqueIndex:idx_project_likes_project_account,priority:2;index"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (ProjectLike) TableName() string {
	return "project_likes"
}

// LikeState is the membership state after a toggle or check.
type LikeState struct {
	Liked bool `json:"liked"`
}
