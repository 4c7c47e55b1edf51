package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project categories. "all" is accepted by listing only and disables the filter.
const (
	CategoryBots      = "bots"
	CategoryServers   = "servers"
	CategoryTools     = "tools"
	CategoryTemplates = "templates"
	CategoryDesigners = "designers"

	CategoryAll = "all"
)

// Categories lists the accepted project categories in display order.
var Categories = []string{CategoryBots, CategoryServers, CategoryTools, CategoryTemplates, CategoryDesigners}

// Project is a catalog entry. Views and Likes are denormalized counters
// maintained by the store, never by read-modify-write in application code.
type Project struct {
	ID                 uint                        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title              string                      `json:"title" gorm:"type:varchar(255);not null"`
	Description        string                      `json:"description" gorm:"type:text;not null"`
	FullDescription    *string                     `json:"fullDescription" gorm:"type:text"`
	Category           string                      `json:"category" gorm:"type:varchar(50);not null;index"`
	GithubURL          *string                     `json:"githubUrl" gorm:"column:github_url;type:varchar(500)"`
	ImageURL           *string                     `json:"imageUrl" gorm:"column:image_url;type:varchar(500)"`
	ProjectFileURL     *string                     `json:"projectFileUrl" gorm:"column:project_file_url;type:varchar(500)"`
	AdditionalImageURL *string                     `json:"additionalImageUrl" gorm:"column:additional_image_url;type:varchar(500)"`
	Features           datatypes.JSONSlice[string] `json:"features"`
	InstallationSteps  *string                     `json:"installationSteps" gorm:"type:text"`
	AuthorID           string                      `json:"authorId" gorm:"type:varchar(255);not null;index"`
	Author             *Account                    `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Views              int                         `json:"views" gorm:"not null;default:0"`
	Likes              int                         `json:"likes" gorm:"not null;default:0"`
	// No column default: gorm would skip an explicit false on insert.
	IsPublished bool      `json:"isPublished" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`
	// Lower-cased title for search. SQL LOWER folds ASCII only on sqlite.
	TitleSearch string `json:"-" gorm:"column:title_search;type:text;not null;default:''"`
}

// ProjectFilter selects published projects for listing.
type ProjectFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// ProjectInput is the body accepted when creating a project.
type ProjectInput struct {
	Title              string   `json:"title" validate:"required,max=255"`
	Description        string   `json:"description" validate:"required"`
	FullDescription    *string  `json:"fullDescription"`
	Category           string   `json:"category" validate:"required,oneof=bots servers tools templates designers"`
	GithubURL          *string  `json:"githubUrl" validate:"omitnil,max=500"`
	ImageURL           *string  `json:"imageUrl" validate:"omitnil,max=500"`
	ProjectFileURL     *string  `json:"projectFileUrl" validate:"omitnil,max=500"`
	AdditionalImageURL *string  `json:"additionalImageUrl" validate:"omitnil,max=500"`
	Features           []string `json:"features" validate:"dive,required"`
	InstallationSteps  *string  `json:"installationSteps"`
	IsPublished        *bool    `json:"isPublished"`
}

// ProjectPatch is a partial update. Nil fields are left untouched; counters,
// id, author and timestamps are not patchable.
type ProjectPatch struct {
	Title              *string   `json:"title" validate:"omitnil,min=1,max=255"`
	Description        *string   `json:"description" validate:"omitnil,min=1"`
	FullDescription    *string   `json:"fullDescription"`
	Category           *string   `json:"category" validate:"omitnil,oneof=bots servers tools templates designers"`
	GithubURL          *string   `json:"githubUrl" validate:"omitnil,max=500"`
	ImageURL           *string   `json:"imageUrl" validate:"omitnil,max=500"`
	ProjectFileURL     *string   `json:"projectFileUrl" validate:"omitnil,max=500"`
	AdditionalImageURL *string   `json:"additionalImageUrl" validate:"omitnil,max=500"`
	Features           *[]string `json:"features"`
	InstallationSteps  *string   `json:"installationSteps"`
	IsPublished        *bool     `json:"isPublished"`
}

// Columns returns the column -> value map for the fields present in the patch.
func (p ProjectPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.FullDescription != nil {
		cols["full_description"] = *p.FullDescription
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.GithubURL != nil {
		cols["github_url"] = *p.GithubURL
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	if p.ProjectFileURL != nil {
		cols["project_file_url"] = *p.ProjectFileURL
	}
	if p.AdditionalImageURL != nil {
		cols["additional_image_url"] = *p.AdditionalImageURL
	}
	if p.Features != nil {
		cols["features"] = datatypes.NewJSONSlice(*p.Features)
	}
	if p.InstallationSteps != nil {
		cols["installation_steps"] = *p.InstallationSteps
	}
	if p.IsPublished != nil {
		cols["is_published"] = *p.IsPublished
	}
	return cols
}
